// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// NativeRunner executes programs directly via os/exec.
type NativeRunner struct {
	// Dir is the working directory for spawned processes. Empty means the
	// current directory.
	Dir string
	// Env holds extra environment variables appended to the host environment.
	Env map[string]string
	// Stdout and Stderr receive process output for the streaming Run variant.
	// Nil streams default to the invoking process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewNativeRunner creates a native runner inheriting the host environment.
func NewNativeRunner() *NativeRunner {
	return &NativeRunner{}
}

// Name returns the runner name.
func (r *NativeRunner) Name() string {
	return "native"
}

// Available returns whether this runner can be used.
func (r *NativeRunner) Available() bool {
	return true
}

// Run executes program with args, streaming output to the configured writers.
func (r *NativeRunner) Run(ctx context.Context, program string, args ...string) *Result {
	cmd := r.command(ctx, program, args...)

	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	return resultFromRunError(cmd.Run())
}

// RunCapture executes program with args and captures its output.
func (r *NativeRunner) RunCapture(ctx context.Context, program string, args ...string) *Result {
	cmd := r.command(ctx, program, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := resultFromRunError(cmd.Run())
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (r *NativeRunner) command(ctx context.Context, program string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, program, args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	cmd.Env = append(os.Environ(), EnvToSlice(r.Env)...)
	return cmd
}

// EnvToSlice converts an environment map to "KEY=value" form, as accepted by
// exec.Cmd.Env and the virtual interpreter.
func EnvToSlice(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}
