// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"fmt"
	"os/exec"

	"envup-cli/internal/execx"

	"github.com/charmbracelet/log"
)

// InstallStrategy installs the tool via the platform's base package
// installer and then re-probes the locate strategies. The installation is
// attempted at most once per resolver lifetime; a failed attempt is final.
type InstallStrategy struct {
	// Tool is the bare executable name.
	Tool string
	// Installers are the commands tried in order to install the tool. Empty
	// means DefaultInstallers(Tool).
	Installers [][]string
	// InstallScript is an optional vendor install script (POSIX shell),
	// executed with the embedded interpreter when every installer command is
	// missing from the host.
	InstallScript string
	// Runner executes installer commands. Nil means a fresh NativeRunner.
	Runner *execx.NativeRunner
	// Logger receives installer progress. Nil means the default logger.
	Logger *log.Logger

	attempted bool
}

// DefaultInstallers returns the fallback install commands for tool, in try
// order. pip3 is preferred; plain pip covers hosts that only ship the
// unversioned entry point.
func DefaultInstallers(tool string) [][]string {
	return [][]string{
		{"pip3", "install", "--user", tool},
		{"pip", "install", "--user", tool},
	}
}

// Name returns the strategy name.
func (s *InstallStrategy) Name() string {
	return "install-then-locate"
}

// Attempted reports whether the installation fallback has already run.
func (s *InstallStrategy) Attempted() bool {
	return s.attempted
}

// Resolve installs the tool and re-probes the locate strategies. A second
// call never re-installs.
func (s *InstallStrategy) Resolve(ctx context.Context) (string, error) {
	if s.attempted {
		return "", fmt.Errorf("%w: fallback install already attempted", ErrNotLocated)
	}
	s.attempted = true

	if err := s.install(ctx); err != nil {
		return "", err
	}

	// The installer may have dropped the binary somewhere PATH does not yet
	// cover, so probe known install dirs as well.
	locate := []Strategy{
		&PathStrategy{Tool: s.Tool},
		&KnownDirsStrategy{Tool: s.Tool},
	}
	for _, strategy := range locate {
		path, err := strategy.Resolve(ctx)
		if err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %q still missing after fallback install", ErrNotLocated, s.Tool)
}

func (s *InstallStrategy) install(ctx context.Context) error {
	runner := s.Runner
	if runner == nil {
		runner = execx.NewNativeRunner()
	}
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	installers := s.Installers
	if len(installers) == 0 {
		installers = DefaultInstallers(s.Tool)
	}

	anyPresent := false
	for _, argv := range installers {
		if len(argv) == 0 {
			continue
		}
		if _, err := exec.LookPath(argv[0]); err != nil {
			continue
		}
		anyPresent = true

		logger.Info("installing tool via fallback", "tool", s.Tool, "installer", argv[0])
		result := runner.RunCapture(ctx, argv[0], argv[1:]...)
		if result.Success() {
			return nil
		}
		logger.Debug("fallback installer failed",
			"installer", argv[0], "exit", result.ExitCode, "stderr", result.ErrOutput)
	}

	// No usable installer command; fall back to the vendor script when one
	// is configured. The embedded interpreter runs it without a system shell.
	if s.InstallScript != "" {
		logger.Info("running vendor install script", "tool", s.Tool)
		virtual := execx.NewVirtualRunner()
		result := virtual.RunScriptCapture(ctx, s.InstallScript)
		if result.Success() {
			return nil
		}
		return fmt.Errorf("%w: vendor install script failed (exit %d)", ErrNotLocated, result.ExitCode)
	}

	if !anyPresent {
		return fmt.Errorf("%w: no fallback installer available for %q", ErrNotLocated, s.Tool)
	}
	return fmt.Errorf("%w: every fallback installer failed for %q", ErrNotLocated, s.Tool)
}
