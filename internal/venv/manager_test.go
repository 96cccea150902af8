// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"envup-cli/internal/testutil"
)

// fakeTool writes a stub package-manager executable that handles the "venv"
// and "pip" subcommands the Manager invokes. Invocations are appended to
// logFile so tests can assert on them.
func fakeTool(t *testing.T, logFile string) string {
	t.Helper()
	dir := t.TempDir()
	body := `echo "$@" >> ` + logFile + `
case "$1" in
venv)
  mkdir -p "$2/bin"
  printf 'home = /usr\n' > "$2/pyvenv.cfg"
  ;;
pip)
  echo "VIRTUAL_ENV=$VIRTUAL_ENV" >> ` + logFile + `
  ;;
esac
exit 0`
	return testutil.WriteStubScript(t, dir, "uv", body)
}

func TestManagerCreate(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "calls.log")
	tool := fakeTool(t, logFile)

	env := New(filepath.Join(t.TempDir(), ".venv"))
	m := NewManager(tool)

	if err := m.Create(context.Background(), env); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if !env.Exists() {
		t.Error("expected environment to exist after Create()")
	}

	// Re-running over the existing environment is accepted.
	if err := m.Create(context.Background(), env); err != nil {
		t.Errorf("second Create() failed: %v", err)
	}
}

func TestManagerCreateFailure(t *testing.T) {
	dir := t.TempDir()
	tool := testutil.WriteStub(t, dir, "uv", "", 1)

	m := NewManager(tool)
	err := m.Create(context.Background(), New(filepath.Join(t.TempDir(), ".venv")))
	if !errors.Is(err, ErrCreateFailed) {
		t.Errorf("expected ErrCreateFailed, got %v", err)
	}
}

func TestManagerInstall(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "calls.log")
	tool := fakeTool(t, logFile)

	workDir := t.TempDir()
	manifest := filepath.Join(workDir, "requirements.txt")
	if err := os.WriteFile(manifest, []byte("streamlit\npandas\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	env := New(filepath.Join(workDir, ".venv"))
	m := NewManager(tool)
	if err := m.Create(context.Background(), env); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := m.Install(context.Background(), env, manifest); err != nil {
		t.Fatalf("Install() failed: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read call log: %v", err)
	}
	calls := string(data)
	if !strings.Contains(calls, "pip install -r "+manifest) {
		t.Errorf("expected pip install invocation, got:\n%s", calls)
	}

	absDir, err := env.AbsDir()
	if err != nil {
		t.Fatalf("AbsDir() failed: %v", err)
	}
	if !strings.Contains(calls, "VIRTUAL_ENV="+absDir) {
		t.Errorf("expected VIRTUAL_ENV=%s in tool environment, got:\n%s", absDir, calls)
	}
}

func TestManagerInstallMissingManifest(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "calls.log")
	tool := fakeTool(t, logFile)

	m := NewManager(tool)
	err := m.Install(context.Background(), New(t.TempDir()), filepath.Join(t.TempDir(), "requirements.txt"))
	if !errors.Is(err, ErrInstallFailed) {
		t.Fatalf("expected ErrInstallFailed, got %v", err)
	}

	// The tool must never run when the manifest is missing.
	if _, statErr := os.Stat(logFile); !os.IsNotExist(statErr) {
		t.Error("expected no tool invocation for missing manifest")
	}
}

func TestManagerInstallToolFailure(t *testing.T) {
	dir := t.TempDir()
	tool := testutil.WriteStub(t, dir, "uv", "resolution failed", 1)

	manifest := filepath.Join(t.TempDir(), "requirements.txt")
	if err := os.WriteFile(manifest, []byte("nosuchpackage==0.0.0\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m := NewManager(tool)
	err := m.Install(context.Background(), New(t.TempDir()), manifest)
	if !errors.Is(err, ErrInstallFailed) {
		t.Errorf("expected ErrInstallFailed, got %v", err)
	}
}
