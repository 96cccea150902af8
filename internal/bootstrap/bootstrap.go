// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	"envup-cli/internal/issue"
	"envup-cli/internal/profile"
	"envup-cli/internal/toolchain"
	"envup-cli/internal/venv"

	"github.com/charmbracelet/log"
)

// Bootstrapper runs the environment preparation sequence. It is not safe
// for concurrent use; two runs against the same working directory are
// undefined.
type Bootstrapper struct {
	cfg    Config
	logger *log.Logger

	// newResolver and newManager are test seams.
	newResolver func() *toolchain.Resolver
	newManager  func(toolPath string) *venv.Manager
	newVerifier func() *venv.Verifier
}

// New creates a Bootstrapper from cfg.
func New(cfg Config) *Bootstrapper {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	b := &Bootstrapper{cfg: cfg, logger: logger}

	b.newResolver = func() *toolchain.Resolver {
		if !cfg.FallbackInstall {
			return toolchain.NewResolver(cfg.Tool,
				toolchain.WithLogger(logger),
				toolchain.WithoutInstallFallback(),
			)
		}
		return toolchain.NewResolver(cfg.Tool,
			toolchain.WithLogger(logger),
			toolchain.WithStrategies(
				&toolchain.PathStrategy{Tool: cfg.Tool},
				&toolchain.KnownDirsStrategy{Tool: cfg.Tool},
				&toolchain.InstallStrategy{
					Tool:          cfg.Tool,
					InstallScript: cfg.InstallScript,
					Logger:        logger,
				},
			),
		)
	}
	b.newManager = func(toolPath string) *venv.Manager {
		return venv.NewManager(toolPath, venv.WithManagerLogger(logger))
	}
	b.newVerifier = func() *venv.Verifier {
		return venv.NewVerifier(cfg.App, cfg.Policy, venv.WithVerifierLogger(logger))
	}

	return b
}

// Run executes the sequence. The returned Report is valid only when err is
// nil; a fatal step returns immediately with an error carrying operation
// context and fix suggestions.
func (b *Bootstrapper) Run(ctx context.Context) (*Report, error) {
	report := &Report{EnvDir: b.cfg.VenvDir}

	// Step 1: resolve the package-manager executable.
	resolution, err := b.newResolver().Resolve(ctx)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("resolve package manager").
			WithResource(b.cfg.Tool).
			WithSuggestion(fmt.Sprintf("Install it manually: pip3 install --user %s", b.cfg.Tool)).
			WithSuggestion("Make sure ~/.local/bin is on your PATH").
			Wrap(err).
			BuildError()
	}
	report.ToolPath = resolution.Path
	report.ToolStrategy = resolution.Strategy
	report.record(StepResolveTool, fmt.Sprintf("resolved %s via %s", resolution.Path, resolution.Strategy))
	b.logger.Info("package manager ready", "tool", b.cfg.Tool, "path", resolution.Path, "strategy", resolution.Strategy)

	env := venv.New(b.cfg.VenvDir)
	manager := b.newManager(resolution.Path)

	// Step 2: create the virtual environment. Re-running over an existing
	// environment is accepted.
	if err := manager.Create(ctx, env); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("create virtual environment").
			WithResource(env.Dir).
			WithSuggestion("Check write permission in the working directory").
			WithSuggestion(fmt.Sprintf("Remove a broken directory and re-run: rm -rf %s", env.Dir)).
			Wrap(err).
			BuildError()
	}
	report.record(StepCreateEnv, fmt.Sprintf("environment at %s", env.Dir))

	// Step 3: install the dependency manifest.
	if err := manager.Install(ctx, env, b.cfg.Manifest); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("install dependencies").
			WithResource(b.cfg.Manifest).
			WithSuggestion("Check the manifest exists and lists valid package specifiers").
			WithSuggestion("Re-run with --verbose to see the tool's full output").
			Wrap(err).
			BuildError()
	}
	report.record(StepInstallDeps, fmt.Sprintf("installed %s", b.cfg.Manifest))

	// Step 4: verify the downstream application. Fatal only under the fail
	// policy.
	version, err := b.newVerifier().Verify(ctx, env)
	switch {
	case err != nil:
		return nil, issue.NewErrorContext().
			WithOperation("verify application").
			WithResource(b.cfg.App).
			WithSuggestion(fmt.Sprintf("Run the check yourself: %s --version", filepath.Join(env.BinDir(), b.cfg.App))).
			WithSuggestion("Confirm the application is listed in the manifest").
			Wrap(err).
			BuildError()
	case version != "":
		report.AppVersion = version
		report.record(StepVerify, fmt.Sprintf("%s reports %s", b.cfg.App, version))
	default:
		report.warn(StepVerify, "version check failed", fmt.Sprintf("%s did not answer its version check", b.cfg.App))
	}

	// Host side effect: ensure the tool's bin directory stays on PATH for
	// future shells. Never fatal.
	b.ensureProfile(resolution.Path, report)

	return report, nil
}

// ensureProfile appends the PATH export line to the shell profile when
// enabled. Failures degrade to warnings: the bootstrap itself already
// succeeded.
func (b *Bootstrapper) ensureProfile(toolPath string, report *Report) {
	if !b.cfg.ProfileEnabled {
		return
	}

	exportDir := b.cfg.ExportPath
	if exportDir == "" {
		exportDir = filepath.Dir(toolPath)
	}

	file := b.cfg.ProfileFile
	if file == "" {
		var err error
		file, err = profile.DefaultFile()
		if err != nil {
			b.logger.Warn("skipping shell profile update", "reason", err)
			report.warn(StepProfile, "profile file not determined", err.Error())
			return
		}
	}

	appended, err := profile.EnsureLine(file, profile.ExportLine(exportDir))
	if err != nil {
		b.logger.Warn("shell profile update failed", "file", file, "reason", err)
		report.warn(StepProfile, fmt.Sprintf("could not update %s", file), err.Error())
		return
	}

	report.ProfileUpdated = appended
	if appended {
		report.record(StepProfile, fmt.Sprintf("PATH export appended to %s", file))
		b.logger.Info("shell profile updated", "file", file, "dir", exportDir)
	} else {
		report.record(StepProfile, fmt.Sprintf("PATH export already present in %s", file))
	}
}
