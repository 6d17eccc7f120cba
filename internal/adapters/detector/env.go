// Package detector decides whether output goes to an interactive terminal.
package detector

import (
	"os"

	"go.trai.ch/docmk/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents how run output is presented.
type OutputMode int

const (
	// ModeAuto detects the mode from the environment.
	ModeAuto OutputMode = iota
	// ModeTTY decorates output and runs commands on a pseudo-terminal.
	ModeTTY
	// ModePlain prints undecorated output suitable for logs.
	ModePlain
)

// String returns the flag value of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTTY:
		return "tty"
	case ModePlain:
		return "plain"
	default:
		return "auto"
	}
}

// Environment is the part of the process environment detection looks at.
type Environment struct {
	IsTerminal func(fd int) bool
	Getenv     func(key string) string
	Fd         int
}

// ProcessEnvironment describes the current process's stdout.
func ProcessEnvironment() Environment {
	return Environment{
		IsTerminal: term.IsTerminal,
		Getenv:     os.Getenv,
		Fd:         int(os.Stdout.Fd()), //nolint:gosec // file descriptors fit in int
	}
}

// Detect returns ModeTTY when stdout is a terminal outside CI, ModePlain otherwise.
func Detect(env Environment) OutputMode {
	if !env.IsTerminal(env.Fd) {
		return ModePlain
	}
	if ci := env.Getenv("CI"); ci == "true" || ci == "1" {
		return ModePlain
	}
	if env.Getenv("TERM") == "dumb" {
		return ModePlain
	}
	return ModeTTY
}

// ParseMode parses the --output flag.
func ParseMode(flag string) (OutputMode, error) {
	switch flag {
	case "", "auto":
		return ModeAuto, nil
	case "tty":
		return ModeTTY, nil
	case "plain", "ci":
		return ModePlain, nil
	default:
		return ModeAuto, zerr.With(domain.ErrInvalidOutputMode, "output", flag)
	}
}

// ResolveMode applies the user's choice on top of the detected mode.
func ResolveMode(detected, requested OutputMode) OutputMode {
	if requested == ModeAuto {
		return detected
	}
	return requested
}
