package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/docmk/internal/ui/output"
	"go.trai.ch/docmk/internal/ui/style"
)

func TestProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.Profile(false))

	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.Ascii, output.Profile(true))
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf, true)

	_, _ = out.WriteString(out.String("plain").Foreground(termenv.ANSIRed).String())
	assert.Equal(t, "plain", buf.String())
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil, false))
}

func TestRenderer_Plain(t *testing.T) {
	var buf bytes.Buffer
	r := output.Renderer(&buf, true)

	got := r.NewStyle().Foreground(style.Red).Bold(true).Render("failed")
	assert.Equal(t, "failed", got)
}
