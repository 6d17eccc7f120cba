// Package commands implements the CLI commands for docmk.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/docmk/internal/app"
	"go.trai.ch/docmk/internal/build"
	"go.trai.ch/docmk/internal/core/domain"
)

// CLI represents the command line interface for docmk.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, args []string, opts app.RunOptions) error
	List(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, args []string, opts app.WatchOptions) error
}

// variableFlags maps flag names to the variable they set.
var variableFlags = map[string]string{
	"sphinxopts":  domain.VarSphinxOpts,
	"sphinxbuild": domain.VarSphinxBuild,
	"paper":       domain.VarPaper,
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "docmk",
		Short:         "Build Sphinx documentation without make",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("dir", "C", ".", "Directory to look for docmk.yaml and the docs sources in")
	flags.String("sphinxopts", "", "Extra options passed to every sphinx-build call (SPHINXOPTS)")
	flags.String("sphinxbuild", "", "Documentation build command (SPHINXBUILD)")
	flags.String("paper", "", "LaTeX paper size, a4 or letter (PAPER)")
	flags.String("log-format", app.LogFormatPretty, "Log format: pretty or json")
	flags.StringP("output", "o", "auto", "Output mode: auto, tty, or plain")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// globalOptions collects the persistent flags of cmd.
// Variable flags only apply when given explicitly.
func globalOptions(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()

	dir, _ := flags.GetString("dir")
	logFormat, _ := flags.GetString("log-format")
	output, _ := flags.GetString("output")

	vars := make(map[string]string)
	for name, variable := range variableFlags {
		if flags.Changed(name) {
			vars[variable], _ = flags.GetString(name)
		}
	}

	return app.Options{
		Dir:        dir,
		Variables:  vars,
		OutputMode: output,
		LogFormat:  logFormat,
	}
}
