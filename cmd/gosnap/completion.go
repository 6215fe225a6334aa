package main

import (
	"os"

	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/philipparndt/gosnap/pkg/loader"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for gosnap.

To load completions:

Bash:

  $ source <(gosnap completion bash)

  To load completions for each session, execute once:
  Linux:
    $ gosnap completion bash > /etc/bash_completion.d/gosnap
  macOS:
    $ gosnap completion bash > /usr/local/etc/bash_completion.d/gosnap

Zsh:

  $ gosnap completion zsh > "${fpath[1]}/_gosnap"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ gosnap completion fish | source

PowerShell:

  PS> gosnap completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// registerCompletions completes model arguments by extension and preset view
// names. It runs after every command has been added.
func registerCompletions() {
	_ = snapshotCmd.RegisterFlagCompletionFunc("view", completeViews)
	for _, cmd := range []*cobra.Command{infoCmd, edgesCmd, trianglesCmd, snapCmd, measureCmd, snapshotCmd, watchCmd} {
		cmd.ValidArgsFunction = completeModels
	}
}

func completeModels(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return loader.Extensions(), cobra.ShellCompDirectiveFilterFileExt
}

func completeViews(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return camera.ViewNames(), cobra.ShellCompDirectiveNoFileComp
}
