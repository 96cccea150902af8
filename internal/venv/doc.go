// SPDX-License-Identifier: MPL-2.0

// Package venv manages the virtual environment the bootstrapper prepares.
//
// Env is a value type describing the environment directory; Manager wraps
// the resolved package-manager executable to create the environment and
// install the dependency manifest into it; Verifier runs the downstream
// application's version check with a configurable warn-or-fail policy.
//
// The environment lifecycle is strictly forward-only: absent, created,
// populated, verified. Re-running create over an existing environment is
// accepted (the tool treats it as a refresh); nothing here ever removes an
// environment.
package venv
