// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// configDirOverride allows tests to override the config directory.
// Necessary because os.UserHomeDir() doesn't reliably respect the HOME
// environment variable on all platforms (e.g., macOS in CI).
var configDirOverride string

// configFilePathOverride forces loading from a specific file (--config flag).
var configFilePathOverride string

// Reset clears overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
	configFilePathOverride = ""
}

// SetConfigDirOverride sets a custom config directory path, primarily for
// tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride forces subsequent loads to read the given file
// exclusively. Used by the --config flag.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// Load reads the configuration honoring the package-level overrides.
func Load() (*Config, error) {
	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
		ConfigDirPath:  configDirOverride,
	})
	return cfg, err
}
