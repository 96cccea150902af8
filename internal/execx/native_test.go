// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestNativeRunnerName(t *testing.T) {
	r := NewNativeRunner()
	if r.Name() != "native" {
		t.Errorf("expected name 'native', got %q", r.Name())
	}
	if !r.Available() {
		t.Error("native runner should be available")
	}
}

func TestNativeRunnerCapture(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses a POSIX echo binary")
	}

	r := NewNativeRunner()
	result := r.RunCapture(context.Background(), "echo", "hello")
	if !result.Success() {
		t.Fatalf("echo failed: exit=%d err=%v", result.ExitCode, result.Error)
	}
	if strings.TrimSpace(result.Output) != "hello" {
		t.Errorf("expected 'hello', got %q", result.Output)
	}
}

func TestNativeRunnerMissingProgram(t *testing.T) {
	r := NewNativeRunner()
	result := r.RunCapture(context.Background(), "envup-no-such-program-xyzzy")
	if result.Success() {
		t.Fatal("expected failure for missing program")
	}
	if result.Error == nil {
		t.Error("expected spawn error for missing program")
	}
}

func TestNativeRunnerNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses a POSIX shell")
	}

	r := NewNativeRunner()
	result := r.RunCapture(context.Background(), "sh", "-c", "exit 7")
	if result.Error != nil {
		t.Fatalf("non-zero exit should not surface as error: %v", result.Error)
	}
	if result.ExitCode != 7 {
		t.Errorf("expected exit code 7, got %d", result.ExitCode)
	}
}
