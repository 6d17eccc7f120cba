// Package output creates termenv outputs and lipgloss renderers with docmk's
// color rules.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Profile returns the color profile for w.
// NO_COLOR and plain output both force Ascii.
func Profile(plain bool) termenv.Profile {
	if plain || os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output writing to w. A nil w selects os.Stderr.
func New(w io.Writer, plain bool) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w,
		termenv.WithProfile(Profile(plain)),
		termenv.WithTTY(!plain),
	)
}

// Renderer creates a lipgloss renderer bound to w with the same profile as New.
func Renderer(w io.Writer, plain bool) *lipgloss.Renderer {
	if w == nil {
		w = os.Stderr
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(Profile(plain))
	return r
}
