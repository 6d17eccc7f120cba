// Package shell runs recipe commands as child processes.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/creack/pty"
	"go.trai.ch/docmk/internal/core/domain"
	"go.trai.ch/docmk/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
//
// With a pseudo-terminal enabled the child sees a TTY, so tools such as
// sphinx-build keep their colored progress output; stdout and stderr are
// then merged into stdout.
type Executor struct {
	usePTY atomic.Bool
}

// NewExecutor creates a new Executor using plain pipes.
func NewExecutor() *Executor {
	return &Executor{}
}

// UsePTY switches between running commands on a pseudo-terminal and on pipes.
func (e *Executor) UsePTY(enable bool) {
	e.usePTY.Store(enable)
}

// Execute runs cmd and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, cmd *ports.Command, stdout, stderr io.Writer) error {
	if len(cmd.Args) == 0 {
		return domain.ErrEmptyCommand
	}

	name := cmd.Args[0]
	env := resolveEnvironment(os.Environ(), cmd.Env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args[1:]...) //nolint:gosec // recipe commands are user provided
	c.Args[0] = name
	c.Dir = cmd.Dir
	c.Env = env

	var err error
	if e.usePTY.Load() {
		err = runPTY(c, stdout)
	} else {
		c.Stdout = stdout
		c.Stderr = stderr
		err = c.Run()
	}
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return zerr.With(zerr.Wrap(err, "failed to start command"), "command", name)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return zerr.With(zerr.Wrap(ctxErr, domain.ErrCommandFailed.Error()), "command", name)
	}

	failed := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", name)
	return zerr.With(failed, "exit_code", exitErr.ExitCode())
}

// runPTY runs c on a pseudo-terminal, copying everything it prints to out.
func runPTY(c *exec.Cmd, out io.Writer) error {
	ptmx, err := pty.Start(c)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading fails with EIO once the child has exited and the slave is closed.
		_, _ = io.Copy(out, ptmx)
	}()

	err = c.Wait()
	<-ioDone
	_ = ptmx.Close()
	return err
}

// resolveEnvironment overlays overrides on the process environment.
// Recipes inherit the full environment, the way make does.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return sysEnv
	}

	result := make([]string, 0, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if _, replaced := overrides[k]; ok && replaced {
			continue
		}
		result = append(result, entry)
	}
	for k, v := range overrides {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the PATH of env rather than of the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
