// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"path/filepath"

	appconfig "envup-cli/internal/config"
	"envup-cli/internal/venv"

	"github.com/charmbracelet/log"
)

type (
	// Config holds every input of a bootstrap run. Construct with
	// DefaultConfig and adjust via Apply.
	Config struct {
		// Tool is the package-manager executable name.
		Tool string
		// VenvDir is the virtual environment directory.
		VenvDir string
		// Manifest is the dependency manifest path.
		Manifest string
		// App is the application whose version check closes the run.
		App string
		// Policy decides how a failed verification is treated.
		Policy venv.Policy
		// FallbackInstall enables the install-then-locate strategy.
		FallbackInstall bool
		// InstallScript is an optional vendor install script for the fallback.
		InstallScript string
		// ProfileEnabled enables the shell-profile PATH export.
		ProfileEnabled bool
		// ProfileFile overrides the profile file picked from $SHELL.
		ProfileFile string
		// ExportPath overrides the directory exported on PATH. Empty means
		// the resolved tool's parent directory.
		ExportPath string
		// Logger receives progress output. Nil means the default logger.
		Logger *log.Logger
	}

	// Option mutates a Config.
	Option func(*Config)
)

// DefaultConfig returns the built-in bootstrap inputs, matching the
// defaults of the config package.
func DefaultConfig() Config {
	return Config{
		Tool:            "uv",
		VenvDir:         venv.DefaultDir,
		Manifest:        filepath.Join(".devcontainer", "requirements.txt"),
		App:             "streamlit",
		Policy:          venv.PolicyWarn,
		FallbackInstall: true,
		ProfileEnabled:  true,
	}
}

// Apply applies opts in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithTool overrides the package-manager executable name.
func WithTool(tool string) Option {
	return func(c *Config) { c.Tool = tool }
}

// WithVenvDir overrides the environment directory.
func WithVenvDir(dir string) Option {
	return func(c *Config) { c.VenvDir = dir }
}

// WithManifest overrides the manifest path.
func WithManifest(path string) Option {
	return func(c *Config) { c.Manifest = path }
}

// WithApp overrides the verified application.
func WithApp(app string) Option {
	return func(c *Config) { c.App = app }
}

// WithPolicy overrides the verification policy.
func WithPolicy(policy venv.Policy) Option {
	return func(c *Config) { c.Policy = policy }
}

// WithFallbackInstall toggles the install-then-locate strategy.
func WithFallbackInstall(enabled bool) Option {
	return func(c *Config) { c.FallbackInstall = enabled }
}

// WithProfile toggles the shell-profile PATH export.
func WithProfile(enabled bool) Option {
	return func(c *Config) { c.ProfileEnabled = enabled }
}

// WithLogger overrides the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// FromAppConfig maps the loaded application configuration onto bootstrap
// inputs. The verify policy has already passed schema validation, so a
// parse failure here falls back to the warn default.
func FromAppConfig(cfg *appconfig.Config) Config {
	policy, err := venv.ParsePolicy(cfg.Verify.Policy)
	if err != nil {
		policy = venv.PolicyWarn
	}

	return Config{
		Tool:            cfg.Tool,
		VenvDir:         cfg.VenvDir,
		Manifest:        cfg.Manifest,
		App:             cfg.Verify.App,
		Policy:          policy,
		FallbackInstall: cfg.FallbackInstall.Enabled,
		InstallScript:   cfg.FallbackInstall.Script,
		ProfileEnabled:  cfg.Profile.Enabled,
		ProfileFile:     cfg.Profile.File,
		ExportPath:      cfg.Profile.ExportPath,
	}
}
