// Package domain contains the core domain models for documentation build targets.
package domain

import (
	"iter"
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// Graph holds the build targets and their prerequisite edges.
type Graph struct {
	targets map[string]Target
	order   []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets: make(map[string]Target),
	}
}

// AddTarget adds a target to the graph.
// It returns an error if a target with the same name already exists.
func (g *Graph) AddTarget(t *Target) error {
	if t.Name == "" || strings.IndexFunc(t.Name, unicode.IsSpace) >= 0 {
		return zerr.With(ErrInvalidTargetName, "target", t.Name)
	}
	if _, exists := g.targets[t.Name]; exists {
		return zerr.With(ErrTargetAlreadyExists, "target", t.Name)
	}
	g.targets[t.Name] = *t
	g.order = append(g.order, t.Name)
	return nil
}

// Target returns the target with the given name.
func (g *Graph) Target(name string) (Target, bool) {
	t, ok := g.targets[name]
	return t, ok
}

// Default returns the name of the first declared target, or "" for an empty graph.
func (g *Graph) Default() string {
	if len(g.order) == 0 {
		return ""
	}
	return g.order[0]
}

// Targets yields targets in declaration order.
func (g *Graph) Targets() iter.Seq[Target] {
	return func(yield func(Target) bool) {
		for _, name := range g.order {
			if !yield(g.targets[name]) {
				return
			}
		}
	}
}

// Validate checks that every prerequisite exists and that there are no cycles.
func (g *Graph) Validate() error {
	_, err := g.plan(g.order)
	return err
}

// Plan returns the targets needed to make names, prerequisites first.
// Each target appears once, even when several requested targets share it.
func (g *Graph) Plan(names []string) ([]Target, error) {
	for _, name := range names {
		if _, ok := g.targets[name]; !ok {
			return nil, zerr.With(ErrTargetNotFound, "target", name)
		}
	}
	return g.plan(names)
}

func (g *Graph) plan(names []string) ([]Target, error) {
	result := make([]Target, 0, len(g.targets))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(name, parent string) error
	visit = func(name, parent string) error {
		t, exists := g.targets[name]
		if !exists {
			err := zerr.With(ErrMissingDependency, "dependency", name)
			return zerr.With(err, "target", parent)
		}

		visited[name] = 1
		path = append(path, name)

		for _, dep := range t.Dependencies {
			switch visited[dep] {
			case 1:
				return buildCycleError(path, dep)
			case 0:
				if err := visit(dep, name); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		result = append(result, t)
		return nil
	}

	for _, name := range names {
		if visited[name] == 0 {
			if err := visit(name, ""); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []string, dep string) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	cycle := append(append([]string{}, path[start:]...), dep)
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(cycle, " -> "))
}
