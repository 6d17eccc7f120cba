package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/docmk/internal/adapters/watcher"
	"go.trai.ch/docmk/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [VAR=value...] [targets...]",
		Short: "Rebuild targets when the sources change",
		Long: "Make the given targets, then make them again whenever a file below\n" +
			"the docs root changes. Without targets, html is watched.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keepGoing, _ := cmd.Flags().GetBool("keep-going")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			return c.app.Watch(cmd.Context(), args, app.WatchOptions{
				Options:   globalOptions(cmd),
				KeepGoing: keepGoing,
				Debounce:  debounce,
			})
		},
	}
	cmd.Flags().BoolP("keep-going", "k", false, "Keep going when a target fails")
	cmd.Flags().Duration("debounce", watcher.DefaultDebounceWindow, "Time to wait for changes to settle before rebuilding")
	return cmd
}
