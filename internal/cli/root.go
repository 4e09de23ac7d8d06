// Package cli provides the root command for dir-concat.
package cli

import (
	"os"

	"github.com/bethropolis/dir-concat/internal/app"
	"github.com/bethropolis/dir-concat/internal/config"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:   "dir-concat [root_dir]",
		Short: "Concatenate the files of a directory tree",
		Long: `dir-concat walks a directory tree and writes the contents of the selected
files to a single stream, each preceded by its relative path.

Files are excluded by .gitignore files at every level of the tree (the last
matching rule wins, '!' re-includes), then kept only when they pass the
whitelist and are not on the blacklist:
  dir-concat -w py,md -b README.md ./src
  dir-concat -o all.txt -l
  dir-concat -n`,
		Args:    cobra.MaximumNArgs(1),
		Version: config.Version,
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flag errors have already been reported with usage
			cmd.SilenceUsage = true
			cfg.Finalize(args)
			return app.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()).Run(cmd.Context())
		},
	}

	cfg.BindFlags(cmd.Flags())
	cmd.AddCommand(newCompletionCmd())
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate the shell completion script",
		Long: `Print a completion script for the given shell. For example:
  source <(dir-concat completion bash)
  dir-concat completion zsh > "${fpath[1]}/_dir-concat"
  dir-concat completion fish > ~/.config/fish/completions/dir-concat.fish`,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	cmd.SetOut(os.Stdout)
	cmd.SetErr(colorable.NewColorableStderr())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
