// SPDX-License-Identifier: MPL-2.0

// Package bootstrap orchestrates the environment preparation sequence.
//
// The sequence is strictly linear; each step's success is a precondition
// for the next:
//
//  1. resolve the package-manager executable (internal/toolchain)
//  2. create the virtual environment (internal/venv)
//  3. install the dependency manifest (internal/venv)
//  4. verify the downstream application (internal/venv)
//
// plus one host side effect after a successful resolution: ensuring the
// tool's bin directory is exported on PATH in the shell profile
// (internal/profile). Profile failures are warnings; every other failure
// aborts the run immediately with no retry and no rollback.
package bootstrap
