package app

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/docmk/internal/core/domain"
)

// resolve loads the settings, applies VAR=value arguments and then flag
// variables, and returns the remaining arguments as target names.
func (a *App) resolve(opts Options, args []string) (*domain.Settings, []string, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	settings, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, nil, err
	}

	assignments, targets := splitArgs(args)
	for _, kv := range assignments {
		if err := settings.Set(kv[0], kv[1]); err != nil {
			return nil, nil, err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(opts.Variables)) {
		if err := settings.Set(name, opts.Variables[name]); err != nil {
			return nil, nil, err
		}
	}

	a.warnPaper(settings)
	return settings, targets, nil
}

// splitArgs separates make-style VAR=value assignments from target names.
func splitArgs(args []string) ([][2]string, []string) {
	var assignments [][2]string
	var targets []string
	for _, arg := range args {
		if name, value, ok := strings.Cut(arg, "="); ok && name != "" {
			assignments = append(assignments, [2]string{name, value})
			continue
		}
		targets = append(targets, arg)
	}
	return assignments, targets
}
