// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestMustSetenvRestores(t *testing.T) {
	const key = "ENVUP_TESTUTIL_KEY"
	if err := os.Setenv(key, "original"); err != nil {
		t.Fatalf("setenv: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	cleanup := MustSetenv(t, key, "changed")
	if got := os.Getenv(key); got != "changed" {
		t.Errorf("expected 'changed', got %q", got)
	}
	cleanup()
	if got := os.Getenv(key); got != "original" {
		t.Errorf("expected restored 'original', got %q", got)
	}
}

func TestWriteStubRunsAndExits(t *testing.T) {
	dir := t.TempDir()
	path := WriteStub(t, dir, "fakeuv", "uv 0.4.0", 0)

	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		t.Fatalf("stub failed: %v", err)
	}
	if strings.TrimSpace(string(out)) != "uv 0.4.0" {
		t.Errorf("unexpected stub output: %q", out)
	}
}

func TestWriteStubNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	path := WriteStub(t, dir, "failing", "", 2)

	err := exec.Command(path).Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.ExitCode() != 2 {
		t.Errorf("expected exit code 2, got %d", exitErr.ExitCode())
	}
}
