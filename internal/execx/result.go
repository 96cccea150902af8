// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"errors"
	"os/exec"
)

// Result contains the outcome of running an external process.
type Result struct {
	// ExitCode is the process exit code (0 on success).
	ExitCode int
	// Output is captured stdout (capturing variants only).
	Output string
	// ErrOutput is captured stderr (capturing variants only).
	ErrOutput string
	// Error is set when the process could not be run at all, as opposed to
	// running and exiting non-zero.
	Error error
}

// Success reports whether the process ran and exited zero.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode == 0
}

// resultFromRunError converts the error returned by exec.Cmd.Run into a
// Result. A non-zero exit is not treated as a Go error: the exit code is
// recorded and Error stays nil.
func resultFromRunError(err error) *Result {
	if err == nil {
		return &Result{ExitCode: 0}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Result{ExitCode: exitErr.ExitCode()}
	}
	return &Result{ExitCode: 1, Error: err}
}
