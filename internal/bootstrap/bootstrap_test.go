// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"envup-cli/internal/issue"
	"envup-cli/internal/testutil"
	"envup-cli/internal/toolchain"
	"envup-cli/internal/venv"

	"github.com/charmbracelet/log"
)

// workspace lays out a working directory with a stub package manager on
// PATH, a pre-built environment containing the stub application, and a
// dependency manifest. It returns a Config pointed at the lot.
func workspace(t *testing.T, appOutput string, appExit int) Config {
	t.Helper()

	dir := t.TempDir()
	restore := testutil.MustChdir(t, dir)
	t.Cleanup(restore)

	binDir := filepath.Join(dir, "tools")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	testutil.WriteStubScript(t, binDir, "uv", `echo "$@" >> uv.log
exit 0`)
	restorePath := testutil.MustSetenv(t, "PATH", binDir)
	t.Cleanup(restorePath)

	envBin := filepath.Join(dir, ".venv", "bin")
	if err := os.MkdirAll(envBin, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".venv", "pyvenv.cfg"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	testutil.WriteStub(t, envBin, "streamlit", appOutput, appExit)

	manifestDir := filepath.Join(dir, ".devcontainer")
	if err := os.MkdirAll(manifestDir, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(manifestDir, "requirements.txt")
	if err := os.WriteFile(manifest, []byte("streamlit\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Apply(
		WithManifest(manifest),
		WithLogger(log.New(io.Discard)),
	)
	cfg.ProfileFile = filepath.Join(dir, "profile")
	cfg.ExportPath = binDir
	return cfg
}

func TestRunFullSequence(t *testing.T) {
	cfg := workspace(t, "streamlit, version 1.2.3", 0)

	report, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := report.ToolPath, filepath.Join(cfg.ExportPath, "uv"); got != want {
		t.Errorf("ToolPath = %q, want %q", got, want)
	}
	if report.ToolStrategy != "locate-in-PATH" {
		t.Errorf("ToolStrategy = %q, want locate-in-PATH", report.ToolStrategy)
	}
	if report.AppVersion != "streamlit, version 1.2.3" {
		t.Errorf("AppVersion = %q", report.AppVersion)
	}
	if !report.ProfileUpdated {
		t.Error("ProfileUpdated = false, want true on first run")
	}
	if len(report.Warnings()) != 0 {
		t.Errorf("Warnings() = %v, want none", report.Warnings())
	}

	wantSteps := []Step{StepResolveTool, StepCreateEnv, StepInstallDeps, StepVerify, StepProfile}
	if len(report.Outcomes) != len(wantSteps) {
		t.Fatalf("Outcomes = %d entries, want %d", len(report.Outcomes), len(wantSteps))
	}
	for i, outcome := range report.Outcomes {
		if outcome.Step != wantSteps[i] {
			t.Errorf("Outcomes[%d].Step = %q, want %q", i, outcome.Step, wantSteps[i])
		}
	}

	invocations, err := os.ReadFile("uv.log")
	if err != nil {
		t.Fatalf("tool was never invoked: %v", err)
	}
	for _, want := range []string{"venv .venv", "pip install -r"} {
		if !strings.Contains(string(invocations), want) {
			t.Errorf("tool invocations missing %q:\n%s", want, invocations)
		}
	}
}

func TestRunSecondPassIsIdempotent(t *testing.T) {
	cfg := workspace(t, "streamlit, version 1.2.3", 0)
	b := New(cfg)

	if _, err := b.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	report, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if report.ProfileUpdated {
		t.Error("ProfileUpdated = true on second run, want false")
	}
	content, err := os.ReadFile(cfg.ProfileFile)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(content), "export PATH="); got != 1 {
		t.Errorf("profile holds %d export lines after two runs, want 1:\n%s", got, content)
	}
}

func TestRunToolMissing(t *testing.T) {
	cfg := workspace(t, "streamlit, version 1.2.3", 0)
	restorePath := testutil.MustSetenv(t, "PATH", t.TempDir())
	defer restorePath()
	restoreHome := testutil.SetHomeDir(t, t.TempDir())
	defer restoreHome()
	cfg.FallbackInstall = false

	_, err := New(cfg).Run(context.Background())
	if !errors.Is(err, toolchain.ErrToolUnavailable) {
		t.Fatalf("Run() error = %v, want ErrToolUnavailable", err)
	}

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("Run() error = %T, want *issue.ActionableError", err)
	}
	if len(actionable.Suggestions) == 0 {
		t.Error("resolution failure carries no suggestions")
	}
}

func TestRunMissingManifestSkipsVerify(t *testing.T) {
	cfg := workspace(t, "streamlit, version 1.2.3", 0)
	cfg.Manifest = filepath.Join(".devcontainer", "absent.txt")

	// The application stub records nothing, so a sentinel file tells us
	// whether verification ran.
	testutil.WriteStubScript(t, filepath.Join(".venv", "bin"), "streamlit", `: > verify.ran
exit 0`)

	_, err := New(cfg).Run(context.Background())
	if !errors.Is(err, venv.ErrInstallFailed) {
		t.Fatalf("Run() error = %v, want ErrInstallFailed", err)
	}
	if _, statErr := os.Stat("verify.ran"); statErr == nil {
		t.Error("verification ran after a failed install")
	}
}

func TestRunVerifyFailurePolicyFail(t *testing.T) {
	cfg := workspace(t, "", 1)
	cfg.Policy = venv.PolicyFail

	_, err := New(cfg).Run(context.Background())
	if !errors.Is(err, venv.ErrVerifyFailed) {
		t.Fatalf("Run() error = %v, want ErrVerifyFailed", err)
	}
}

func TestRunVerifyFailurePolicyWarn(t *testing.T) {
	cfg := workspace(t, "", 1)

	report, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, want warning only", err)
	}
	if report.AppVersion != "" {
		t.Errorf("AppVersion = %q, want empty", report.AppVersion)
	}

	warnings := report.Warnings()
	if len(warnings) != 1 || warnings[0].Step != StepVerify {
		t.Errorf("Warnings() = %v, want one verify warning", warnings)
	}
}

func TestRunProfileDisabled(t *testing.T) {
	cfg := workspace(t, "streamlit, version 1.2.3", 0)
	cfg.ProfileEnabled = false

	report, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.ProfileUpdated {
		t.Error("ProfileUpdated = true with profile disabled")
	}
	if _, statErr := os.Stat(cfg.ProfileFile); statErr == nil {
		t.Error("profile file was created with profile disabled")
	}
	for _, outcome := range report.Outcomes {
		if outcome.Step == StepProfile {
			t.Error("profile step recorded with profile disabled")
		}
	}
}
