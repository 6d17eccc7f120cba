// Package runner makes the targets of a plan one step at a time.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.trai.ch/docmk/internal/core/domain"
	"go.trai.ch/docmk/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options controls a single run.
type Options struct {
	// DryRun prints every step without carrying it out.
	DryRun bool
	// KeepGoing continues with targets that do not depend on a failed one.
	KeepGoing bool
}

// Runner executes plans sequentially.
type Runner struct {
	executor ports.Executor
	fs       ports.FileSystem
	logger   ports.Logger
	tracer   ports.Tracer
}

// NewRunner creates a new Runner.
func NewRunner(
	executor ports.Executor,
	fs ports.FileSystem,
	logger ports.Logger,
	tracer ports.Tracer,
) *Runner {
	return &Runner{
		executor: executor,
		fs:       fs,
		logger:   logger,
		tracer:   tracer,
	}
}

// Run makes every target of the plan in order.
// Without KeepGoing the first failure stops the run and is returned.
func (r *Runner) Run(ctx context.Context, plan *domain.Plan, opts Options) error {
	r.tracer.EmitPlan(ctx, plan.Names(), plan.Dependencies(), plan.Requested)

	parents := requiredBy(plan)
	failed := make(map[string]bool)
	var errs error

	for i := range plan.Targets {
		target := &plan.Targets[i]

		if err := ctx.Err(); err != nil {
			return errors.Join(errs, err)
		}

		if dep := failedDependency(target, failed); dep != "" {
			failed[target.Name] = true
			err := zerr.With(domain.ErrTargetSkipped, "target", target.Name)
			err = zerr.With(err, "dependency", dep)
			r.logger.Warn(fmt.Sprintf("target '%s' not remade because of errors", target.Name))
			errs = errors.Join(errs, err)
			continue
		}

		if err := r.makeTarget(ctx, plan.Root, target, parents[target.Name], opts); err != nil {
			if !opts.KeepGoing {
				return err
			}
			failed[target.Name] = true
			errs = errors.Join(errs, err)
		}
	}

	return errs
}

func (r *Runner) makeTarget(
	ctx context.Context,
	root string,
	target *domain.Target,
	parent string,
	opts Options,
) error {
	ctx, span := r.tracer.Start(ctx, target.Name, ports.WithParent(parent))
	defer span.End()

	span.SetAttribute("target.steps", len(target.Steps))
	span.SetAttribute("target.dependencies", target.Dependencies)

	for i := range target.Steps {
		step := &target.Steps[i]

		if opts.DryRun {
			_, _ = fmt.Fprintln(span, step.String())
			continue
		}

		if !step.Silent {
			_, _ = fmt.Fprintln(span, step.String())
		}

		err := r.runStep(ctx, root, step, span)
		if err == nil {
			continue
		}

		if step.IgnoreError && ctx.Err() == nil {
			r.logger.Warn(fmt.Sprintf("[%s] %s (ignored)", target.Name, describe(err)))
			continue
		}

		err = zerr.With(zerr.Wrap(err, domain.ErrTargetFailed.Error()), "target", target.Name)
		span.RecordError(err)
		return err
	}

	return nil
}

func (r *Runner) runStep(ctx context.Context, root string, step *domain.Step, out io.Writer) error {
	switch step.Kind {
	case domain.StepExec:
		if len(step.Command) == 0 {
			return domain.ErrEmptyCommand
		}
		cmd := &ports.Command{Args: step.Command, Dir: root}
		if step.Dir != "" {
			cmd.Dir = resolvePath(root, step.Dir)
		}
		return r.executor.Execute(ctx, cmd, out, out)

	case domain.StepMkdir:
		for _, p := range step.Paths {
			if err := r.fs.MkdirAll(resolvePath(root, p)); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrMkdirFailed.Error()), "path", p)
			}
		}
		return nil

	case domain.StepRemove:
		var errs error
		for _, p := range step.Paths {
			pattern := resolvePath(root, p)
			if encloses(pattern, root) {
				errs = errors.Join(errs, zerr.With(domain.ErrRemoveRoot, "path", p))
				continue
			}
			if _, err := r.fs.RemoveAll(pattern); err != nil {
				errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", p))
			}
		}
		return errs

	case domain.StepEcho:
		_, err := fmt.Fprintln(out, step.Message)
		return err

	default:
		return zerr.With(zerr.New("unknown step kind"), "kind", step.Kind.String())
	}
}

// resolvePath joins a relative step path onto root.
// Paths may leave the root, as they would in a make recipe.
func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// encloses reports whether path is root or one of its parents.
func encloses(path, root string) bool {
	rel, err := filepath.Rel(path, root)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// requiredBy maps each planned target to the first planned target that lists it as a prerequisite.
func requiredBy(plan *domain.Plan) map[string]string {
	parents := make(map[string]string, len(plan.Targets))
	for _, t := range plan.Targets {
		for _, dep := range t.Dependencies {
			if _, ok := parents[dep]; !ok {
				parents[dep] = t.Name
			}
		}
	}
	return parents
}

func failedDependency(target *domain.Target, failed map[string]bool) string {
	for _, dep := range target.Dependencies {
		if failed[dep] {
			return dep
		}
	}
	return ""
}

// messager matches errors that can report their own message without the chain.
type messager interface {
	Message() string
}

func describe(err error) string {
	if m, ok := err.(messager); ok {
		return m.Message()
	}
	return err.Error()
}
