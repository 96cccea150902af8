// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"errors"
	"testing"
)

func TestResultSuccess(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{"zero exit", Result{ExitCode: 0}, true},
		{"non-zero exit", Result{ExitCode: 2}, false},
		{"spawn failure", Result{ExitCode: 1, Error: errors.New("not found")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Success(); got != tt.want {
				t.Errorf("Success() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultFromRunErrorNil(t *testing.T) {
	r := resultFromRunError(nil)
	if r.ExitCode != 0 || r.Error != nil {
		t.Errorf("expected clean result, got exit=%d err=%v", r.ExitCode, r.Error)
	}
}

func TestResultFromRunErrorNonExit(t *testing.T) {
	cause := errors.New("executable file not found")
	r := resultFromRunError(cause)
	if r.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", r.ExitCode)
	}
	if !errors.Is(r.Error, cause) {
		t.Errorf("expected wrapped cause, got %v", r.Error)
	}
}

func TestEnvToSlice(t *testing.T) {
	if got := EnvToSlice(nil); got != nil {
		t.Errorf("expected nil slice for empty map, got %v", got)
	}

	got := EnvToSlice(map[string]string{"VIRTUAL_ENV": "/tmp/.venv"})
	if len(got) != 1 || got[0] != "VIRTUAL_ENV=/tmp/.venv" {
		t.Errorf("unexpected slice: %v", got)
	}
}
