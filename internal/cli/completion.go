package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell.

Load it for the current session:

  bash:        source <(goflow completion bash)
  zsh:         source <(goflow completion zsh)
  fish:        goflow completion fish | source
  powershell:  goflow completion powershell | Out-String | Invoke-Expression

Or install it permanently:

  bash:  goflow completion bash > /etc/bash_completion.d/goflow
  zsh:   goflow completion zsh > "${fpath[1]}/_goflow"
  fish:  goflow completion fish > ~/.config/fish/completions/goflow.fish

Zsh users may need "autoload -U compinit; compinit" in ~/.zshrc first.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
