// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRunner executes POSIX shell scripts using the embedded mvdan/sh
// interpreter. It needs no system shell, which makes it the fallback vehicle
// for vendor install scripts on minimal hosts.
type VirtualRunner struct {
	// Dir is the working directory for the script. Empty means the current
	// directory.
	Dir string
	// Env holds extra environment variables layered over the host environment.
	Env map[string]string
	// Stdout and Stderr receive script output for the streaming variant.
	Stdout io.Writer
	Stderr io.Writer
}

// NewVirtualRunner creates a virtual runner inheriting the host environment.
func NewVirtualRunner() *VirtualRunner {
	return &VirtualRunner{}
}

// Name returns the runner name.
func (r *VirtualRunner) Name() string {
	return "virtual"
}

// Available returns whether this runner can be used. The interpreter is
// built in, so it always can.
func (r *VirtualRunner) Available() bool {
	return true
}

// Validate parses the script without running it, surfacing syntax errors
// early.
func (r *VirtualRunner) Validate(script string) error {
	_, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// RunScript interprets script, streaming output to the configured writers.
func (r *VirtualRunner) RunScript(ctx context.Context, script string) *Result {
	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return r.runScript(ctx, script, stdout, stderr, nil)
}

// RunScriptCapture interprets script and captures its output.
func (r *VirtualRunner) RunScriptCapture(ctx context.Context, script string) *Result {
	var stdout, stderr bytes.Buffer
	result := r.runScript(ctx, script, &stdout, &stderr, nil)
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (r *VirtualRunner) runScript(ctx context.Context, script string, stdout, stderr io.Writer, stdin io.Reader) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to parse script: %w", err)}
	}

	env := append(os.Environ(), EnvToSlice(r.Env)...)

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(stdin, stdout, stderr),
	}
	if r.Dir != "" {
		opts = append(opts, interp.Dir(r.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &Result{ExitCode: int(exitStatus)}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("script execution failed: %w", err)}
	}

	return &Result{ExitCode: 0}
}
