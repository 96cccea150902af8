// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"envup-cli/internal/cueutil"
	"envup-cli/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "envup"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// DefaultConfig returns the built-in configuration: bootstrap a Streamlit
// devcontainer with uv into ./.venv.
func DefaultConfig() *Config {
	return &Config{
		Tool:     "uv",
		VenvDir:  ".venv",
		Manifest: filepath.Join(".devcontainer", "requirements.txt"),
		Verify: VerifyConfig{
			App:    "streamlit",
			Policy: "warn",
		},
		FallbackInstall: FallbackInstallConfig{
			Enabled: true,
		},
		Profile: ProfileConfig{
			Enabled: true,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// ConfigDir returns the envup configuration directory using platform
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application
// Support, and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the resolved config file path, honoring the
// --config flag override.
func ConfigFilePath() (string, error) {
	if configFilePathOverride != "" {
		return configFilePathOverride, nil
	}
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. Callers that want overrides apply them via opts.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("tool", defaults.Tool)
	v.SetDefault("venv_dir", defaults.VenvDir)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("verify.app", defaults.Verify.App)
	v.SetDefault("verify.policy", defaults.Verify.Policy)
	v.SetDefault("fallback_install.enabled", defaults.FallbackInstall.Enabled)
	v.SetDefault("fallback_install.script", defaults.FallbackInstall.Script)
	v.SetDefault("profile.enabled", defaults.Profile.Enabled)
	v.SetDefault("profile.file", defaults.Profile.File)
	v.SetDefault("profile.export_path", defaults.Profile.ExportPath)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	resolvedPath := ""

	// A custom config file path set via --config is used exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'envup config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the expected schema").
				Wrap(err).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(cuePath).
					WithSuggestion("Check that the file contains valid CUE syntax").
					WithSuggestion("Remove the file to fall back to defaults").
					Wrap(err).
					BuildError()
			}
			resolvedPath = cuePath
		}
		// No config file found: defaults apply, no error.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if !cfg.UI.ColorScheme.IsValid() {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidColorScheme, cfg.UI.ColorScheme)
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	// Unify with the schema; Concrete(false) because every field is optional.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig creates a default config file if it doesn't exist.
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	cueContent := GenerateCUE(DefaultConfig())
	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// envup configuration file.\n\n")

	sb.WriteString(fmt.Sprintf("tool: %q\n", cfg.Tool))
	sb.WriteString(fmt.Sprintf("venv_dir: %q\n", cfg.VenvDir))
	sb.WriteString(fmt.Sprintf("manifest: %q\n", filepath.ToSlash(cfg.Manifest)))

	sb.WriteString("\nverify: {\n")
	sb.WriteString(fmt.Sprintf("\tapp: %q\n", cfg.Verify.App))
	sb.WriteString(fmt.Sprintf("\tpolicy: %q\n", cfg.Verify.Policy))
	sb.WriteString("}\n")

	sb.WriteString("\nfallback_install: {\n")
	sb.WriteString(fmt.Sprintf("\tenabled: %v\n", cfg.FallbackInstall.Enabled))
	if cfg.FallbackInstall.Script != "" {
		sb.WriteString(fmt.Sprintf("\tscript: %q\n", cfg.FallbackInstall.Script))
	}
	sb.WriteString("}\n")

	sb.WriteString("\nprofile: {\n")
	sb.WriteString(fmt.Sprintf("\tenabled: %v\n", cfg.Profile.Enabled))
	if cfg.Profile.File != "" {
		sb.WriteString(fmt.Sprintf("\tfile: %q\n", cfg.Profile.File))
	}
	if cfg.Profile.ExportPath != "" {
		sb.WriteString(fmt.Sprintf("\texport_path: %q\n", cfg.Profile.ExportPath))
	}
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}
