// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"envup-cli/internal/bootstrap"
	"envup-cli/internal/config"
	"envup-cli/internal/profile"
	"envup-cli/internal/toolchain"
	"envup-cli/internal/venv"

	"github.com/spf13/cobra"
)

// doctorCmd inspects the environment without changing anything.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Inspect the development environment without changing it",
	Long: `Inspect the development environment without changing it.

doctor runs the same checks 'envup up' would act on, but only reports:
whether the package manager is reachable, whether the virtual environment
and manifest exist, whether the application answers its version check, and
whether the shell profile already carries the PATH export line.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	appCfg, err := config.Load()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	cfg := bootstrap.FromAppConfig(appCfg)

	var b strings.Builder
	b.WriteString(TitleStyle.Render("envup doctor") + "\n\n")
	healthy := true

	// Package manager: locate only, never install.
	resolver := toolchain.NewResolver(cfg.Tool, toolchain.WithoutInstallFallback())
	resolution, err := resolver.Resolve(cmd.Context())
	toolDir := ""
	if err != nil {
		healthy = false
		b.WriteString(checkLine(false, fmt.Sprintf("package manager %q not found (PATH, known install dirs)", cfg.Tool)))
	} else {
		toolDir = filepath.Dir(resolution.Path)
		b.WriteString(checkLine(true, fmt.Sprintf("package manager: %s (%s)", resolution.Path, resolution.Strategy)))
	}

	env := venv.New(cfg.VenvDir)
	if env.Exists() {
		b.WriteString(checkLine(true, fmt.Sprintf("virtual environment: %s", env.Dir)))
	} else {
		healthy = false
		b.WriteString(checkLine(false, fmt.Sprintf("virtual environment missing: %s", env.Dir)))
	}

	if _, err := os.Stat(cfg.Manifest); err == nil {
		b.WriteString(checkLine(true, fmt.Sprintf("manifest: %s", cfg.Manifest)))
	} else {
		healthy = false
		b.WriteString(checkLine(false, fmt.Sprintf("manifest missing: %s", cfg.Manifest)))
	}

	// Verification is always warn-grade here; doctor never fails the run
	// over it, it only reports.
	verifier := venv.NewVerifier(cfg.App, venv.PolicyWarn)
	if version, err := verifier.Verify(cmd.Context(), env); err == nil && version != "" {
		b.WriteString(checkLine(true, fmt.Sprintf("application: %s", version)))
	} else {
		healthy = false
		b.WriteString(checkLine(false, fmt.Sprintf("application %q did not answer its version check", cfg.App)))
	}

	b.WriteString(profileCheck(cfg, toolDir, &healthy))

	fmt.Print(b.String())
	if !healthy {
		fmt.Println("\n" + SubtitleStyle.Render("Run 'envup up' to repair the environment."))
		return &ExitError{Code: 1, Err: fmt.Errorf("environment is not ready")}
	}
	return nil
}

// profileCheck reports whether the PATH export line is already in place.
// With the tool unresolved the export directory is unknown, so the check
// degrades to a note.
func profileCheck(cfg bootstrap.Config, toolDir string, healthy *bool) string {
	if !cfg.ProfileEnabled {
		return checkLine(true, "shell profile update disabled")
	}

	exportDir := cfg.ExportPath
	if exportDir == "" {
		exportDir = toolDir
	}
	if exportDir == "" {
		return checkLine(true, "shell profile: export directory unknown until the package manager resolves")
	}

	file := cfg.ProfileFile
	if file == "" {
		var err error
		file, err = profile.DefaultFile()
		if err != nil {
			return checkLine(true, "shell profile not determined: "+err.Error())
		}
	}

	present, err := profile.HasLine(file, profile.ExportLine(exportDir))
	if err != nil || !present {
		*healthy = false
		return checkLine(false, fmt.Sprintf("PATH export not yet in %s", file))
	}
	return checkLine(true, fmt.Sprintf("PATH export present in %s", file))
}

func checkLine(ok bool, text string) string {
	if ok {
		return SuccessStyle.Render("✓") + " " + text + "\n"
	}
	return ErrorStyle.Render("✗") + " " + text + "\n"
}
