// Package logger implements ports.Logger on top of log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/docmk/internal/ui/style"
)

// messager matches zerr errors, which report their own message without the chain.
type messager interface {
	Message() string
}

// Logger implements ports.Logger.
// Pretty output is the default; SetJSON switches to slog's JSON handler.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	output   io.Writer
	jsonMode bool
}

// New creates a Logger writing pretty output to os.Stderr.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput changes the destination. A nil w selects os.Stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// rebuild replaces the handler. Callers hold mu or own l exclusively.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = NewPrettyHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err.
// In pretty mode the zerr chain is printed one cause per line.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("docmk failed", "error", err.Error(), "causes", errorChain(err))
		return
	}

	l.logger.Error(formatChain(errorChain(err)))
}

// errorChain returns the messages of err and its causes, outermost first.
// Traversal stops at the first error that is not a zerr error.
func errorChain(err error) []string {
	var messages []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		messages = append(messages, m.Message())
		current = errors.Unwrap(current)
	}
	return messages
}

func formatChain(messages []string) string {
	var lines []string
	for i, msg := range messages {
		parts := strings.Split(msg, "\n")
		switch i {
		case 0:
			lines = append(lines, "Error: "+parts[0])
			for _, p := range parts[1:] {
				lines = append(lines, "       "+p)
			}
			continue
		case 1:
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    "+style.Arrow+" "+parts[0])
		for _, p := range parts[1:] {
			lines = append(lines, "      "+p)
		}
	}
	return strings.Join(lines, "\n")
}
