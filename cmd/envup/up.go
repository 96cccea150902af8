// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"envup-cli/internal/bootstrap"
	"envup-cli/internal/config"
	"envup-cli/internal/issue"
	"envup-cli/internal/toolchain"
	"envup-cli/internal/venv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	upTool       string
	upVenvDir    string
	upManifest   string
	upApp        string
	upPolicy     string
	upNoFallback bool
	upNoProfile  bool

	// upCmd runs the full bootstrap sequence.
	upCmd = &cobra.Command{
		Use:   "up",
		Short: "Bootstrap the development environment in the current directory",
		Long: `Bootstrap the development environment in the current directory.

The sequence is linear and stops at the first fatal failure:

  1. Resolve the package manager (PATH, known install dirs, fallback install)
  2. Create the virtual environment
  3. Install the dependency manifest
  4. Verify the application's version check
  5. Ensure the PATH export line in your shell profile

Re-running 'envup up' on a prepared directory is safe: the environment is
refreshed in place and the profile line is never duplicated.`,
		RunE: runUp,
	}
)

func init() {
	upCmd.Flags().StringVar(&upTool, "tool", "", "package manager executable name (default from config)")
	upCmd.Flags().StringVar(&upVenvDir, "venv-dir", "", "virtual environment directory (default from config)")
	upCmd.Flags().StringVar(&upManifest, "manifest", "", "dependency manifest path (default from config)")
	upCmd.Flags().StringVar(&upApp, "app", "", "application whose version check closes the run (default from config)")
	upCmd.Flags().StringVar(&upPolicy, "verify-policy", "", "verification failure policy: warn or fail (default from config)")
	upCmd.Flags().BoolVar(&upNoFallback, "no-fallback-install", false, "never install the package manager, only locate it")
	upCmd.Flags().BoolVar(&upNoProfile, "no-profile", false, "skip the shell profile PATH export")
}

func runUp(cmd *cobra.Command, args []string) error {
	appCfg, err := config.Load()
	if err != nil {
		renderIssue(issue.ConfigLoadFailedId)
		return &ExitError{Code: 1, Err: err}
	}

	cfg, err := upConfig(cmd, appCfg)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	report, err := bootstrap.New(cfg).Run(cmd.Context())
	if err != nil {
		renderIssue(issueFor(err))
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Print(formatReport(report))
	return nil
}

// upConfig maps the loaded configuration onto bootstrap inputs and applies
// the flag overrides that were explicitly set.
func upConfig(cmd *cobra.Command, appCfg *config.Config) (bootstrap.Config, error) {
	cfg := bootstrap.FromAppConfig(appCfg)
	cfg.Logger = log.Default()

	if cmd.Flags().Changed("tool") {
		cfg.Tool = upTool
	}
	if cmd.Flags().Changed("venv-dir") {
		cfg.VenvDir = upVenvDir
	}
	if cmd.Flags().Changed("manifest") {
		cfg.Manifest = upManifest
	}
	if cmd.Flags().Changed("app") {
		cfg.App = upApp
	}
	if cmd.Flags().Changed("verify-policy") {
		policy, err := venv.ParsePolicy(upPolicy)
		if err != nil {
			return cfg, err
		}
		cfg.Policy = policy
	}
	if upNoFallback {
		cfg.FallbackInstall = false
	}
	if upNoProfile {
		cfg.ProfileEnabled = false
	}
	return cfg, nil
}

// issueFor maps a fatal bootstrap error onto its issue catalog entry.
func issueFor(err error) issue.Id {
	switch {
	case errors.Is(err, toolchain.ErrToolUnavailable):
		return issue.ToolMissingId
	case errors.Is(err, venv.ErrCreateFailed):
		return issue.EnvCreateFailedId
	case errors.Is(err, venv.ErrInstallFailed):
		if strings.Contains(err.Error(), "manifest") {
			return issue.ManifestNotFoundId
		}
		return issue.DependencyInstallFailedId
	case errors.Is(err, venv.ErrVerifyFailed):
		return issue.VerificationFailedId
	}
	return 0
}

// renderIssue writes the issue catalog guidance to stderr, when one exists.
func renderIssue(id issue.Id) {
	if id == 0 {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		log.Warn("failed to render issue guidance", "issue", id, "error", err)
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}

// formatReport renders a completed bootstrap run for the terminal.
func formatReport(report *bootstrap.Report) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Environment ready") + "\n\n")
	b.WriteString(fmt.Sprintf("%s: %s (%s)\n",
		CmdStyle.Render("Package manager"), report.ToolPath, report.ToolStrategy))
	b.WriteString(fmt.Sprintf("%s: %s\n", CmdStyle.Render("Environment"), report.EnvDir))
	if report.AppVersion != "" {
		b.WriteString(fmt.Sprintf("%s: %s\n",
			CmdStyle.Render("Application"), SuccessStyle.Render(report.AppVersion)))
	}

	b.WriteString("\n")
	for _, outcome := range report.Outcomes {
		if outcome.Warning != "" {
			b.WriteString(fmt.Sprintf("%s %s: %s\n",
				WarningStyle.Render("!"), outcome.Step, outcome.Warning))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n",
			SuccessStyle.Render("✓"), outcome.Step, outcome.Detail))
	}

	if report.ProfileUpdated {
		b.WriteString("\n" + SubtitleStyle.Render("Open a new shell (or source your profile) to pick up PATH.") + "\n")
	}
	return b.String()
}
