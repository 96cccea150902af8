// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"
	"testing"

	"envup-cli/internal/bootstrap"
	"envup-cli/internal/config"
	"envup-cli/internal/issue"
	"envup-cli/internal/toolchain"
	"envup-cli/internal/venv"
)

func TestIssueFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{
			name: "tool unavailable",
			err:  fmt.Errorf("wrapped: %w", toolchain.ErrToolUnavailable),
			want: issue.ToolMissingId,
		},
		{
			name: "create failed",
			err:  fmt.Errorf("wrapped: %w", venv.ErrCreateFailed),
			want: issue.EnvCreateFailedId,
		},
		{
			name: "missing manifest",
			err:  fmt.Errorf("%w: manifest %q: no such file", venv.ErrInstallFailed, "reqs.txt"),
			want: issue.ManifestNotFoundId,
		},
		{
			name: "install failed",
			err:  fmt.Errorf("%w: exit status 1", venv.ErrInstallFailed),
			want: issue.DependencyInstallFailedId,
		},
		{
			name: "verify failed",
			err:  fmt.Errorf("wrapped: %w", venv.ErrVerifyFailed),
			want: issue.VerificationFailedId,
		},
		{
			name: "unknown error has no issue",
			err:  fmt.Errorf("unrelated"),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := issueFor(tt.err); got != tt.want {
				t.Errorf("issueFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFormatReport(t *testing.T) {
	report := &bootstrap.Report{
		ToolPath:       "/home/dev/.local/bin/uv",
		ToolStrategy:   "locate-in-PATH",
		EnvDir:         ".venv",
		AppVersion:     "streamlit, version 1.2.3",
		ProfileUpdated: true,
		Outcomes: []bootstrap.StepOutcome{
			{Step: bootstrap.StepResolveTool, Detail: "resolved /home/dev/.local/bin/uv via locate-in-PATH"},
			{Step: bootstrap.StepVerify, Warning: "version check failed"},
		},
	}

	out := formatReport(report)

	for _, want := range []string{
		"/home/dev/.local/bin/uv",
		"locate-in-PATH",
		".venv",
		"streamlit, version 1.2.3",
		"version check failed",
		"source your profile",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("formatReport() missing %q:\n%s", want, out)
		}
	}
}

func TestUpConfigFlagOverrides(t *testing.T) {
	for _, pair := range [][2]string{
		{"tool", "rye"},
		{"verify-policy", "fail"},
	} {
		if err := upCmd.Flags().Set(pair[0], pair[1]); err != nil {
			t.Fatalf("Set(%s) error = %v", pair[0], err)
		}
	}

	cfg, err := upConfig(upCmd, config.DefaultConfig())
	if err != nil {
		t.Fatalf("upConfig() error = %v", err)
	}
	if cfg.Tool != "rye" {
		t.Errorf("Tool = %q, want rye", cfg.Tool)
	}
	if cfg.Policy != venv.PolicyFail {
		t.Errorf("Policy = %q, want fail", cfg.Policy)
	}
	// Untouched flags keep config-derived values.
	if cfg.Manifest == "" || cfg.App == "" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestUpConfigRejectsBadPolicy(t *testing.T) {
	if err := upCmd.Flags().Set("verify-policy", "explode"); err != nil {
		t.Fatal(err)
	}
	defer func() {
		upPolicy = ""
		_ = upCmd.Flags().Set("verify-policy", "warn")
	}()

	if _, err := upConfig(upCmd, config.DefaultConfig()); err == nil {
		t.Error("upConfig() accepted an invalid verify policy")
	}
}
