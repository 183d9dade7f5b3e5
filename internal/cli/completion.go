package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its cobra generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand prints a completion script for the chosen shell.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script for sunburst",
		Long: `Print a shell completion script for sunburst.

Besides commands and flags, the script completes the values sunburst knows
about: --format (svg, png, pdf, json), --type (sunburst, nodelink) and
--style (the built-in chart styles).

Try it in the current shell:
  bash:        source <(sunburst completion bash)
  zsh:         source <(sunburst completion zsh)
  fish:        sunburst completion fish | source
  powershell:  sunburst completion powershell | Out-String | Invoke-Expression

Install it for new shells:
  bash:        sunburst completion bash > ~/.local/share/bash-completion/completions/sunburst
  zsh:         sunburst completion zsh > "${fpath[1]}/_sunburst"   (needs compinit)
  fish:        sunburst completion fish > ~/.config/fish/completions/sunburst.fish
  powershell:  sunburst completion powershell > sunburst.ps1, then dot-source it from $PROFILE

Then try: sunburst render chart.json --style <TAB>`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
