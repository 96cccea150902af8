// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"envup-cli/internal/execx"

	"github.com/charmbracelet/log"
)

// ErrVerifyFailed indicates the downstream application's version check
// failed. Whether this is fatal depends on the configured policy.
var ErrVerifyFailed = errors.New("application verification failed")

// Policy decides how a failed verification is treated.
type Policy string

const (
	// PolicyWarn logs the failure and lets the run succeed (default).
	PolicyWarn Policy = "warn"
	// PolicyFail makes a failed verification fatal.
	PolicyFail Policy = "fail"
)

// ParsePolicy validates a policy string from configuration or flags.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyWarn, PolicyFail:
		return Policy(s), nil
	case "":
		return PolicyWarn, nil
	default:
		return "", fmt.Errorf("invalid verify policy %q (valid: warn, fail)", s)
	}
}

type (
	// Verifier checks that the downstream application answers its version
	// check from inside the environment.
	Verifier struct {
		app    string
		policy Policy
		runner *execx.NativeRunner
		logger *log.Logger
	}

	// VerifierOption configures a Verifier during construction.
	VerifierOption func(*Verifier)
)

// WithVerifierRunner overrides the process runner (test seam).
func WithVerifierRunner(r *execx.NativeRunner) VerifierOption {
	return func(v *Verifier) {
		v.runner = r
	}
}

// WithVerifierLogger overrides the default logger.
func WithVerifierLogger(logger *log.Logger) VerifierOption {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// NewVerifier creates a Verifier for app under the given policy.
func NewVerifier(app string, policy Policy, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		app:    app,
		policy: policy,
		runner: execx.NewNativeRunner(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify lists the environment's executable directory (diagnostic only,
// never fatal) and runs the application's version check. Under PolicyWarn a
// failed check logs a warning and returns ("", nil); under PolicyFail it
// returns an error wrapping ErrVerifyFailed. On success the reported
// version line is returned.
func (v *Verifier) Verify(ctx context.Context, env Env) (string, error) {
	if names := env.ListBin(); len(names) > 0 {
		v.logger.Debug("environment executables", "dir", env.BinDir(), "entries", strings.Join(names, ", "))
	} else {
		v.logger.Debug("environment executable directory is empty", "dir", env.BinDir())
	}

	appPath, err := v.appPath(env)
	if err != nil {
		return "", v.outcome(fmt.Errorf("%w: %v", ErrVerifyFailed, err))
	}

	result := v.runner.RunCapture(ctx, appPath, "--version")
	if !result.Success() {
		return "", v.outcome(fmt.Errorf("%w: %s", ErrVerifyFailed, commandFailure(result)))
	}

	version := lastLine(result.Output)
	if version == "" {
		version = lastLine(result.ErrOutput)
	}
	v.logger.Info("application verified", "app", v.app, "version", version)
	return version, nil
}

// appPath prefers the application binary inside the environment, falling
// back to PATH so a globally installed application still verifies.
func (v *Verifier) appPath(env Env) (string, error) {
	name := v.app
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		name += ".exe"
	}

	candidate := filepath.Join(env.BinDir(), name)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, nil
	}

	path, err := exec.LookPath(v.app)
	if err != nil {
		return "", fmt.Errorf("%q not found in %s or on PATH", v.app, env.BinDir())
	}
	return path, nil
}

func (v *Verifier) outcome(err error) error {
	if v.policy == PolicyFail {
		return err
	}
	v.logger.Warn("verification failed, continuing", "app", v.app, "reason", err)
	return nil
}

// lastLine returns the final non-empty line of s, trimmed.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
