package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/aspectpath/pkg/render"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for aspectpath. Aspect names, strategies
and output formats complete from the configured dataset.

Bash:
  $ source <(aspectpath completion bash)

Zsh:
  $ aspectpath completion zsh > "${fpath[1]}/_aspectpath"

Fish:
  $ aspectpath completion fish > ~/.config/fish/completions/aspectpath.fish

PowerShell:
  PS> aspectpath completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// registerFlagCompletions attaches value completions to flags across the
// command tree.
func (c *CLI) registerFlagCompletions(root *cobra.Command) {
	fixed := func(values ...string) cobra.CompletionFunc {
		return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
	}
	for _, cmd := range root.Commands() {
		for flag, complete := range map[string]cobra.CompletionFunc{
			"strategy": fixed(string(solver.StrategyDFS), string(solver.StrategyLayered)),
			"format":   fixed(string(render.FormatSVG), string(render.FormatDOT), string(render.FormatPDF), string(render.FormatPNG)),
			"kind":     fixed(solver.KindPrimal.String(), solver.KindCompound.String()),
			"sort":     fixed("name", "weight"),
			"prefer":   c.completeAspects,
		} {
			if cmd.Flags().Lookup(flag) != nil {
				_ = cmd.RegisterFlagCompletionFunc(flag, complete)
			}
		}
	}
	_ = root.RegisterFlagCompletionFunc("data", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
