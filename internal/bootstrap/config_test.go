// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"testing"

	appconfig "envup-cli/internal/config"
	"envup-cli/internal/venv"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tool != "uv" {
		t.Errorf("Tool = %q, want uv", cfg.Tool)
	}
	if cfg.VenvDir != venv.DefaultDir {
		t.Errorf("VenvDir = %q, want %q", cfg.VenvDir, venv.DefaultDir)
	}
	if cfg.Policy != venv.PolicyWarn {
		t.Errorf("Policy = %q, want warn", cfg.Policy)
	}
	if !cfg.FallbackInstall || !cfg.ProfileEnabled {
		t.Error("fallback install and profile update should default on")
	}
}

func TestApplyOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(
		WithTool("pixi"),
		WithVenvDir(".env"),
		WithManifest("reqs.txt"),
		WithApp("dash"),
		WithPolicy(venv.PolicyFail),
		WithFallbackInstall(false),
		WithProfile(false),
	)

	if cfg.Tool != "pixi" || cfg.VenvDir != ".env" || cfg.Manifest != "reqs.txt" || cfg.App != "dash" {
		t.Errorf("options not applied: %+v", cfg)
	}
	if cfg.Policy != venv.PolicyFail {
		t.Errorf("Policy = %q, want fail", cfg.Policy)
	}
	if cfg.FallbackInstall || cfg.ProfileEnabled {
		t.Error("boolean options not applied")
	}
}

func TestFromAppConfig(t *testing.T) {
	app := appconfig.DefaultConfig()
	app.Tool = "rye"
	app.Verify.Policy = "fail"
	app.Profile.File = "/home/dev/.zshrc"
	app.FallbackInstall.Script = "install.sh"

	cfg := FromAppConfig(app)

	if cfg.Tool != "rye" {
		t.Errorf("Tool = %q, want rye", cfg.Tool)
	}
	if cfg.Policy != venv.PolicyFail {
		t.Errorf("Policy = %q, want fail", cfg.Policy)
	}
	if cfg.ProfileFile != "/home/dev/.zshrc" {
		t.Errorf("ProfileFile = %q", cfg.ProfileFile)
	}
	if cfg.InstallScript != "install.sh" {
		t.Errorf("InstallScript = %q", cfg.InstallScript)
	}
}

func TestFromAppConfigBadPolicyFallsBackToWarn(t *testing.T) {
	app := appconfig.DefaultConfig()
	app.Verify.Policy = "explode"

	if got := FromAppConfig(app).Policy; got != venv.PolicyWarn {
		t.Errorf("Policy = %q, want warn fallback", got)
	}
}
