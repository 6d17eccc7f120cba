// Package app implements the application layer for docmk.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.trai.ch/docmk/internal/adapters/detector"
	"go.trai.ch/docmk/internal/adapters/linear"
	"go.trai.ch/docmk/internal/adapters/telemetry"
	"go.trai.ch/docmk/internal/core/domain"
	"go.trai.ch/docmk/internal/core/ports"
	"go.trai.ch/docmk/internal/engine/runner"
	"go.trai.ch/zerr"
)

// Log formats accepted by --log-format.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	fs           ports.FileSystem
	logger       ports.Logger
	watcher      ports.Watcher

	stdout io.Writer
	stderr io.Writer
	env    detector.Environment
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	fs ports.FileSystem,
	log ports.Logger,
	watcher ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		fs:           fs,
		logger:       log,
		watcher:      watcher,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		env:          detector.ProcessEnvironment(),
	}
}

// WithOutput redirects build output. Used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithEnvironment replaces the terminal detection environment. Used for testing.
func (a *App) WithEnvironment(env detector.Environment) *App {
	a.env = env
	return a
}

// Options are shared by every command.
type Options struct {
	// Dir is the directory configuration discovery starts from.
	Dir string
	// Variables are assignments from command line flags.
	// They take precedence over VAR=value arguments.
	Variables map[string]string
	// OutputMode is one of auto, tty or plain.
	OutputMode string
	// LogFormat is pretty or json.
	LogFormat string
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Options
	DryRun    bool
	KeepGoing bool
}

// Run makes the targets named in args. Arguments of the form VAR=value
// assign variables; everything else is a target name.
func (a *App) Run(ctx context.Context, args []string, opts RunOptions) error {
	mode, err := a.configure(opts.Options)
	if err != nil {
		return err
	}

	settings, targets, err := a.resolve(opts.Options, args)
	if err != nil {
		return err
	}

	plan, err := a.plan(settings, targets)
	if err != nil {
		return err
	}

	return a.build(ctx, plan, mode, runner.Options{DryRun: opts.DryRun, KeepGoing: opts.KeepGoing})
}

// List prints the available targets.
func (a *App) List(_ context.Context, opts Options) error {
	mode, err := a.configure(opts)
	if err != nil {
		return err
	}

	settings, _, err := a.resolve(opts, nil)
	if err != nil {
		return err
	}

	graph, err := domain.NewRecipeBook(*settings)
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(a.stdout)
	if mode == detector.ModeTTY {
		tbl.SetStyle(table.StyleRounded)
	} else {
		tbl.SetStyle(table.StyleDefault)
	}
	tbl.AppendHeader(table.Row{"Target", "Depends on", "Description"})
	for target := range graph.Targets() {
		tbl.AppendRow(table.Row{
			target.Name,
			strings.Join(target.Dependencies, " "),
			target.Description,
		})
	}
	tbl.Render()
	return nil
}

// configure applies the output flags and returns the effective output mode.
func (a *App) configure(opts Options) (detector.OutputMode, error) {
	switch opts.LogFormat {
	case "", LogFormatPretty, LogFormatJSON:
	default:
		return detector.ModePlain, zerr.With(domain.ErrInvalidLogFormat, "format", opts.LogFormat)
	}
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(opts.LogFormat == LogFormatJSON)
	}

	requested, err := detector.ParseMode(opts.OutputMode)
	if err != nil {
		return detector.ModePlain, err
	}
	return detector.ResolveMode(detector.Detect(a.env), requested), nil
}

// plan builds the recipe book for settings and resolves the requested targets.
func (a *App) plan(settings *domain.Settings, targets []string) (*domain.Plan, error) {
	graph, err := domain.NewRecipeBook(*settings)
	if err != nil {
		return nil, err
	}
	return domain.NewPlan(graph, settings.Root, targets)
}

// build makes plan once, reporting progress through a fresh renderer.
func (a *App) build(ctx context.Context, plan *domain.Plan, mode detector.OutputMode, opts runner.Options) error {
	decorate := mode == detector.ModeTTY
	if e, ok := a.executor.(interface{ UsePTY(bool) }); ok {
		e.UsePTY(decorate)
	}

	renderer := linear.NewRenderer(a.stdout, a.stderr, decorate)
	if err := renderer.Start(ctx); err != nil {
		return err
	}

	provider := telemetry.NewTracerProvider(renderer)
	defer func() {
		_ = provider.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer(provider, "docmk").WithRenderer(renderer)

	r := runner.NewRunner(a.executor, a.fs, a.logger, tracer)
	err := r.Run(ctx, plan, opts)
	_ = renderer.Stop()

	if err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return nil
}

// warnPaper reports a PAPER value that selects no LaTeX paper size.
func (a *App) warnPaper(settings *domain.Settings) {
	if settings.Paper != "" && settings.PaperOption() == nil {
		a.logger.Warn(fmt.Sprintf("PAPER=%s is neither %s nor %s; using the LaTeX default paper size",
			settings.Paper, domain.PaperA4, domain.PaperLetter))
	}
}
