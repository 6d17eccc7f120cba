package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.trai.ch/docmk/internal/adapters/watcher"
	"go.trai.ch/docmk/internal/core/domain"
	"go.trai.ch/docmk/internal/engine/runner"
	"golang.org/x/sync/errgroup"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Options
	KeepGoing bool
	// Debounce is how long changes must settle before a rebuild starts.
	Debounce time.Duration
}

// Watch makes the targets named in args, then makes them again whenever a
// source file under the docs root changes. It returns when ctx is done.
// Without targets the html target is watched.
func (a *App) Watch(ctx context.Context, args []string, opts WatchOptions) error {
	mode, err := a.configure(opts.Options)
	if err != nil {
		return err
	}

	settings, targets, err := a.resolve(opts.Options, args)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		targets = []string{string(domain.BuilderHTML)}
	}

	plan, err := a.plan(settings, targets)
	if err != nil {
		return err
	}

	runOpts := runner.Options{KeepGoing: opts.KeepGoing}
	if err := a.build(ctx, plan, mode, runOpts); err != nil {
		a.logger.Warn("build failed; waiting for changes")
	}

	if err := a.watcher.Start(ctx, settings.Root, watchSkips(settings)); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}

	// A pending rebuild absorbs batches that arrive while a build runs.
	rebuild := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(window, func(paths []string) {
		select {
		case rebuild <- paths:
		default:
		}
	})
	defer debouncer.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-rebuild:
				a.logger.Info(describeChange(settings.Root, paths))
				if err := a.build(ctx, plan, mode, runOpts); err != nil && ctx.Err() == nil {
					a.logger.Warn("build failed; waiting for changes")
				}
			}
		}
	})

	return g.Wait()
}

// watchSkips lists the generated directories relative to the docs root.
func watchSkips(settings *domain.Settings) []string {
	var skip []string
	for _, dir := range []string{settings.BuildDir, settings.APIOutputDir} {
		if dir == "" {
			continue
		}
		if filepath.IsAbs(dir) {
			rel, err := filepath.Rel(settings.Root, dir)
			if err != nil {
				continue
			}
			dir = rel
		}
		skip = append(skip, filepath.Clean(dir))
	}
	return skip
}

func describeChange(root string, paths []string) string {
	first := paths[0]
	if rel, err := filepath.Rel(root, first); err == nil {
		first = rel
	}
	if len(paths) == 1 {
		return fmt.Sprintf("%s changed, rebuilding", first)
	}
	return fmt.Sprintf("%s and %d more changed, rebuilding", first, len(paths)-1)
}
