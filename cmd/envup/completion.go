// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for envup.

To enable shell completions, run one of the following commands:

` + SubtitleStyle.Render("Bash:") + `
  # Add to ~/.bashrc:
  eval "$(envup completion bash)"

  # Or install system-wide:
  envup completion bash > /etc/bash_completion.d/envup

` + SubtitleStyle.Render("Zsh:") + `
  # Add to ~/.zshrc:
  eval "$(envup completion zsh)"

  # Or install to fpath:
  envup completion zsh > "${fpath[1]}/_envup"

` + SubtitleStyle.Render("Fish:") + `
  envup completion fish > ~/.config/fish/completions/envup.fish

` + SubtitleStyle.Render("PowerShell:") + `
  envup completion powershell | Out-String | Invoke-Expression

  # Or add to $PROFILE:
  envup completion powershell >> $PROFILE
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}
