// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
)

// MustChdir changes the current working directory to dir.
// It returns a cleanup function that restores the original directory.
// The test fails immediately if the directory change fails.
func MustChdir(t testing.TB, dir string) func() {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory to %s: %v", dir, err)
	}
	return func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Errorf("failed to restore directory to %s: %v", originalWd, err)
		}
	}
}

// MustSetenv sets the environment variable key to value.
// It returns a cleanup function that restores the original value (or unsets it).
// The test fails immediately if the operation fails.
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()
	originalValue, hadValue := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	return func() {
		if hadValue {
			if err := os.Setenv(key, originalValue); err != nil {
				t.Errorf("failed to restore env %s: %v", key, err)
			}
		} else {
			if err := os.Unsetenv(key); err != nil {
				t.Errorf("failed to unset env %s: %v", key, err)
			}
		}
	}
}

// SetHomeDir sets the platform home directory variable (HOME, or USERPROFILE
// on Windows) and returns a cleanup function restoring the original value.
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "USERPROFILE", dir)
	default:
		return MustSetenv(t, "HOME", dir)
	}
}

// WriteStub writes an executable stub script named name into dir and returns
// its path. The stub prints output on stdout and exits with exitCode. Tests
// use stubs to stand in for package-manager and application binaries on PATH.
//
// Stubs are POSIX shell scripts; callers on Windows should skip.
func WriteStub(t testing.TB, dir, name, output string, exitCode int) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub executables are POSIX shell scripts")
	}

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n"
	if output != "" {
		script += "echo \"" + output + "\"\n"
	}
	script += "exit " + strconv.Itoa(exitCode) + "\n"

	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write stub %s: %v", name, err)
	}
	return path
}

// WriteStubScript writes an executable stub with an arbitrary body after the
// shebang line. Used when a stub must record invocations or inspect its
// arguments.
func WriteStubScript(t testing.TB, dir, name, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub executables are POSIX shell scripts")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write stub %s: %v", name, err)
	}
	return path
}
