// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"errors"
	"fmt"
	"os"

	"envup-cli/internal/execx"

	"github.com/charmbracelet/log"
)

var (
	// ErrCreateFailed indicates the environment creation command exited
	// non-zero. Fatal for the bootstrap run.
	ErrCreateFailed = errors.New("virtual environment creation failed")

	// ErrInstallFailed indicates the dependency install failed, either
	// because the manifest is missing or because the install command exited
	// non-zero. Fatal; verification must not run afterwards.
	ErrInstallFailed = errors.New("dependency installation failed")
)

type (
	// Manager drives the resolved package-manager executable against one
	// environment. It performs no retries and no rollback: a failed step
	// leaves deciding what to do next to the operator.
	Manager struct {
		toolPath string
		runner   *execx.NativeRunner
		logger   *log.Logger
	}

	// ManagerOption configures a Manager during construction.
	ManagerOption func(*Manager)
)

// WithRunner overrides the process runner (test seam).
func WithRunner(r *execx.NativeRunner) ManagerOption {
	return func(m *Manager) {
		m.runner = r
	}
}

// WithManagerLogger overrides the default logger.
func WithManagerLogger(logger *log.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager around the resolved tool executable path.
func NewManager(toolPath string, opts ...ManagerOption) *Manager {
	m := &Manager{
		toolPath: toolPath,
		runner:   execx.NewNativeRunner(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ToolPath returns the package-manager executable this manager drives.
func (m *Manager) ToolPath() string {
	return m.toolPath
}

// Create creates (or refreshes) the environment. Running over an existing
// environment is accepted; the tool re-links the interpreter and keeps
// installed packages intact.
func (m *Manager) Create(ctx context.Context, env Env) error {
	m.logger.Info("creating virtual environment", "dir", env.Dir)

	result := m.runner.RunCapture(ctx, m.toolPath, "venv", env.Dir)
	if !result.Success() {
		return fmt.Errorf("%w: %s", ErrCreateFailed, commandFailure(result))
	}
	return nil
}

// Install installs the manifest into the environment. The manifest is
// consumed read-only; its grammar is owned by the tool. A missing manifest
// fails before the tool is invoked.
func (m *Manager) Install(ctx context.Context, env Env, manifest string) error {
	if _, err := os.Stat(manifest); err != nil {
		return fmt.Errorf("%w: manifest %q: %v", ErrInstallFailed, manifest, err)
	}

	absDir, err := env.AbsDir()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}

	m.logger.Info("installing dependencies", "manifest", manifest, "env", env.Dir)

	// VIRTUAL_ENV points the tool's pip frontend at the new environment.
	runner := *m.runner
	runner.Env = mergedEnv(runner.Env, "VIRTUAL_ENV", absDir)

	result := runner.RunCapture(ctx, m.toolPath, "pip", "install", "-r", manifest)
	if !result.Success() {
		return fmt.Errorf("%w: %s", ErrInstallFailed, commandFailure(result))
	}
	return nil
}

// commandFailure summarizes a failed Result for error messages, preferring
// stderr which is where pip and uv report their diagnostics.
func commandFailure(result *execx.Result) string {
	if result.Error != nil {
		return result.Error.Error()
	}
	detail := lastLine(result.ErrOutput)
	if detail == "" {
		detail = lastLine(result.Output)
	}
	if detail == "" {
		return fmt.Sprintf("exit status %d", result.ExitCode)
	}
	return fmt.Sprintf("exit status %d: %s", result.ExitCode, detail)
}

func mergedEnv(env map[string]string, key, value string) map[string]string {
	merged := make(map[string]string, len(env)+1)
	for k, v := range env {
		merged[k] = v
	}
	merged[key] = value
	return merged
}
