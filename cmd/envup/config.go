// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"envup-cli/internal/config"
	"envup-cli/internal/issue"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var (
	configShowFormat string

	// configCmd groups the configuration subcommands.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage envup configuration",
		Long: `Manage envup configuration.

Configuration is stored in:
  - Linux: ~/.config/envup/config.cue
  - macOS: ~/Library/Application Support/envup/config.cue
  - Windows: %APPDATA%\envup\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(configShowFormat)
		},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	}

	configDumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	}
)

func init() {
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "text", "output format: text, toml or cue")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configDumpCmd)
}

func showConfig(format string) error {
	cfg, err := config.Load()
	if err != nil {
		renderIssue(issue.ConfigLoadFailedId)
		return err
	}

	switch format {
	case "toml":
		encoded, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		fmt.Print(string(encoded))
		return nil
	case "cue":
		fmt.Print(config.GenerateCUE(cfg))
		return nil
	case "text":
		fmt.Print(formatConfigText(cfg))
		return nil
	}
	return fmt.Errorf("unknown format %q (valid: text, toml, cue)", format)
}

// formatConfigText renders the configuration as styled key/value lines.
func formatConfigText(cfg *config.Config) string {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	out := TitleStyle.Render("Current Configuration") + "\n\n"

	if path, err := config.ConfigFilePath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			out += fmt.Sprintf("%s: %s\n\n", keyStyle.Render("Config file"), path)
		} else {
			out += fmt.Sprintf("%s: %s\n\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		}
	}

	out += fmt.Sprintf("%s: %s\n", keyStyle.Render("tool"), valueStyle.Render(cfg.Tool))
	out += fmt.Sprintf("%s: %s\n", keyStyle.Render("venv_dir"), valueStyle.Render(cfg.VenvDir))
	out += fmt.Sprintf("%s: %s\n", keyStyle.Render("manifest"), valueStyle.Render(cfg.Manifest))
	out += fmt.Sprintf("%s: %s\n", keyStyle.Render("verify.app"), valueStyle.Render(cfg.Verify.App))
	out += fmt.Sprintf("%s: %s\n", keyStyle.Render("verify.policy"), valueStyle.Render(cfg.Verify.Policy))
	out += fmt.Sprintf("%s: %s\n", keyStyle.Render("fallback_install.enabled"), valueStyle.Render(fmt.Sprintf("%t", cfg.FallbackInstall.Enabled)))
	if cfg.FallbackInstall.Script != "" {
		out += fmt.Sprintf("%s: %s\n", keyStyle.Render("fallback_install.script"), valueStyle.Render(cfg.FallbackInstall.Script))
	}
	out += fmt.Sprintf("%s: %s\n", keyStyle.Render("profile.enabled"), valueStyle.Render(fmt.Sprintf("%t", cfg.Profile.Enabled)))
	if cfg.Profile.File != "" {
		out += fmt.Sprintf("%s: %s\n", keyStyle.Render("profile.file"), valueStyle.Render(cfg.Profile.File))
	}
	if cfg.Profile.ExportPath != "" {
		out += fmt.Sprintf("%s: %s\n", keyStyle.Render("profile.export_path"), valueStyle.Render(cfg.Profile.ExportPath))
	}
	out += fmt.Sprintf("%s: %s\n", keyStyle.Render("ui.color_scheme"), valueStyle.Render(string(cfg.UI.ColorScheme)))
	out += fmt.Sprintf("%s: %s\n", keyStyle.Render("ui.verbose"), valueStyle.Render(fmt.Sprintf("%t", cfg.UI.Verbose)))
	return out
}

func initConfigFile() error {
	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create default config: %w", err)
	}

	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	fmt.Printf("%s Configuration file ready at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath() error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
