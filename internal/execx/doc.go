// SPDX-License-Identifier: MPL-2.0

// Package execx runs external processes for the bootstrapper.
//
// Two runners are available:
//   - native: spawns processes directly via os/exec
//   - virtual: interprets POSIX shell scripts with the embedded mvdan/sh
//     interpreter, for hosts without a usable system shell
//
// Both produce a Result with the child's exit code and, for capturing
// variants, its output. Exit-code extraction from *exec.ExitError is
// centralized here so callers never inspect process state themselves.
package execx
