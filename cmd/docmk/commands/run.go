package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/docmk/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [VAR=value...] [targets...]",
		Short: "Make documentation targets",
		Long: "Make the given targets and their prerequisites in order.\n" +
			"Without targets, help is made, which lists the available targets.\n" +
			"Arguments of the form VAR=value set SPHINXOPTS, SPHINXBUILD, PAPER or BUILDDIR.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			keepGoing, _ := cmd.Flags().GetBool("keep-going")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				Options:   globalOptions(cmd),
				DryRun:    dryRun,
				KeepGoing: keepGoing,
			})
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Print the steps that would run without running them")
	cmd.Flags().BoolP("keep-going", "k", false, "Keep going when a target fails")
	return cmd
}
