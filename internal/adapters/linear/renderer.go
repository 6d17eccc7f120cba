// Package linear renders a run as a chronological stream, the way make does.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/docmk/internal/core/ports"
	"go.trai.ch/docmk/internal/ui/output"
	"go.trai.ch/docmk/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer.
//
// Target output goes to stdout undecorated. Status lines go to stderr: in
// decorated mode a banner per target, in plain mode only make-style failure
// lines.
type Renderer struct {
	stdout   io.Writer
	stderr   io.Writer
	decorate bool

	banner  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style

	mu      sync.Mutex
	stopped bool
	targets map[string]*targetState // spanID -> state
}

type targetState struct {
	name      string
	startTime time.Time
	buf       bytes.Buffer
}

// NewRenderer creates a new Renderer. Nil writers select os.Stdout and os.Stderr.
func NewRenderer(stdout, stderr io.Writer, decorate bool) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	lg := output.Renderer(stderr, !decorate)
	return &Renderer{
		stdout:   stdout,
		stderr:   stderr,
		decorate: decorate,
		banner:   lg.NewStyle().Bold(true).Foreground(style.Accent),
		success:  lg.NewStyle().Foreground(style.Green),
		failure:  lg.NewStyle().Bold(true).Foreground(style.Red),
		muted:    lg.NewStyle().Foreground(style.Muted),
		targets:  make(map[string]*targetState),
	}
}

// Start is a no-op; the renderer writes synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes partial lines of unfinished targets.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.targets {
		r.flushLocked(t)
	}
	r.stopped = true
	return nil
}

// OnPlanEmit announces the targets about to be made.
func (r *Renderer) OnPlanEmit(targets []string, _ map[string][]string, requested []string) {
	if !r.decorate {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}
	line := fmt.Sprintf("%s making %v (%d targets)", style.Arrow, requested, len(targets))
	_, _ = fmt.Fprintln(r.stderr, r.muted.Render(line))
}

// OnTaskStart records the target and prints its banner.
func (r *Renderer) OnTaskStart(spanID, requiredBy, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}
	r.targets[spanID] = &targetState{name: name, startTime: startTime}

	if !r.decorate {
		return
	}
	line := r.banner.Render(style.Arrow + " " + name)
	if requiredBy != "" {
		line += " " + r.muted.Render("(for "+requiredBy+")")
	}
	_, _ = fmt.Fprintln(r.stderr, line)
}

// OnTaskLog writes complete lines to stdout and keeps the partial remainder.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.targets[spanID]
	if !ok || r.stopped {
		return
	}

	t.buf.Write(data)
	if i := bytes.LastIndexByte(t.buf.Bytes(), '\n'); i >= 0 {
		_, _ = r.stdout.Write(t.buf.Next(i + 1))
	}
}

// OnTaskComplete flushes the target's output and reports its outcome.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.targets[spanID]
	if !ok {
		return
	}
	delete(r.targets, spanID)
	if r.stopped {
		return
	}
	r.flushLocked(t)

	switch {
	case err != nil:
		line := fmt.Sprintf("docmk: *** [%s] %s", t.name, err.Error())
		if r.decorate {
			line = style.Cross + " " + t.name + ": " + err.Error()
		}
		_, _ = fmt.Fprintln(r.stderr, r.failure.Render(line))
	case r.decorate:
		elapsed := endTime.Sub(t.startTime).Round(time.Millisecond)
		line := fmt.Sprintf("%s %s %s", style.Check, t.name, r.muted.Render(elapsed.String()))
		_, _ = fmt.Fprintln(r.stderr, r.success.Render(line))
	}
}

// flushLocked writes a trailing partial line. Must be called with r.mu held.
func (r *Renderer) flushLocked(t *targetState) {
	if t.buf.Len() == 0 {
		return
	}
	_, _ = r.stdout.Write(t.buf.Bytes())
	_, _ = io.WriteString(r.stdout, "\n")
	t.buf.Reset()
}
