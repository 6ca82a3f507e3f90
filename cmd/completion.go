package cmd

import (
	"fmt"

	"github.com/msalah0e/semnet/internal/annotation"
	"github.com/spf13/cobra"
)

// completionCmd generates shell completion scripts.
func completionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate completion scripts for your shell.

  # Bash (add to ~/.bashrc)
  eval "$(semnet completion bash)"

  # Zsh (add to ~/.zshrc)
  eval "$(semnet completion zsh)"

  # Fish
  semnet completion fish | source`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				_ = rootCmd.GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				_ = rootCmd.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				_ = rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				_ = rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}

	return cmd
}

// annotationCompletionFunc completes annotation ids with their names.
func annotationCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s, err := annotation.Load(annotationsPath())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, a := range s.List() {
		completions = append(completions, fmt.Sprintf("%d\t%s", a.ID, a.Name))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
