// SPDX-License-Identifier: MPL-2.0

package config

import "errors"

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
var ErrInvalidColorScheme = errors.New("invalid color scheme")

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// Config holds the application configuration.
	Config struct {
		// Tool is the package-manager executable name.
		Tool string `json:"tool" toml:"tool" mapstructure:"tool"`
		// VenvDir is the virtual environment directory, relative to the
		// working directory unless absolute.
		VenvDir string `json:"venv_dir" toml:"venv_dir" mapstructure:"venv_dir"`
		// Manifest is the dependency manifest path.
		Manifest string `json:"manifest" toml:"manifest" mapstructure:"manifest"`
		// Verify configures the final application check.
		Verify VerifyConfig `json:"verify" toml:"verify" mapstructure:"verify"`
		// FallbackInstall configures the install-then-locate strategy.
		FallbackInstall FallbackInstallConfig `json:"fallback_install" toml:"fallback_install" mapstructure:"fallback_install"`
		// Profile configures the shell-profile PATH export.
		Profile ProfileConfig `json:"profile" toml:"profile" mapstructure:"profile"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" toml:"ui" mapstructure:"ui"`
	}

	// VerifyConfig configures the final application check.
	VerifyConfig struct {
		// App is the application whose version check closes the bootstrap.
		App string `json:"app" toml:"app" mapstructure:"app"`
		// Policy is "warn" (default) or "fail".
		Policy string `json:"policy" toml:"policy" mapstructure:"policy"`
	}

	// FallbackInstallConfig configures the install-then-locate strategy.
	FallbackInstallConfig struct {
		// Enabled toggles the fallback installation entirely.
		Enabled bool `json:"enabled" toml:"enabled" mapstructure:"enabled"`
		// Script is an optional vendor install script (POSIX shell) run with
		// the embedded interpreter when no installer command is available.
		Script string `json:"script" toml:"script" mapstructure:"script"`
	}

	// ProfileConfig configures the shell-profile PATH export.
	ProfileConfig struct {
		// Enabled toggles the profile edit entirely.
		Enabled bool `json:"enabled" toml:"enabled" mapstructure:"enabled"`
		// File overrides the profile file picked from $SHELL.
		File string `json:"file" toml:"file" mapstructure:"file"`
		// ExportPath overrides the directory exported on PATH. Empty means
		// the resolved tool's parent directory.
		ExportPath string `json:"export_path" toml:"export_path" mapstructure:"export_path"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme.
		ColorScheme ColorScheme `json:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output.
		Verbose bool `json:"verbose" toml:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the ColorScheme is a recognized value.
func (c ColorScheme) IsValid() bool {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true
	default:
		return false
	}
}
