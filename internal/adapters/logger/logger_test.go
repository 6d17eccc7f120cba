package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docmk/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing uncolored output into a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("watching /docs for changes") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("target 'html' not remade because of errors") },
			goldenName: "warn_basic",
		},
		{
			name:       "simple error",
			log:        func(l *logger.Logger) { l.Error(os.ErrPermission) },
			goldenName: "error_simple",
		},
		{
			name: "zerr chain",
			log: func(l *logger.Logger) {
				err := zerr.Wrap(
					zerr.Wrap(errors.New("exit status 2"), "command failed"),
					"target failed",
				)
				l.Error(zerr.With(err, "target", "html"))
			},
			goldenName: "error_chain",
		},
		{
			name:       "multiline error",
			log:        func(l *logger.Logger) { l.Error(errors.New("yaml: unmarshal errors:\n  line 3: bad")) },
			goldenName: "error_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.Wrap(errors.New("no such file"), "failed to read config"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "docmk failed", record["msg"])
	assert.Equal(t, []any{"failed to read config", "no such file"}, record["causes"])
}

func TestLogger_SetJSON_KeepsOutput(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Info("hello")
	lg.SetJSON(false)
	lg.Info("again")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.True(t, json.Valid(lines[0]))
	assert.Equal(t, "again", string(lines[1]))
}

func TestErrorChain(t *testing.T) {
	err := zerr.With(zerr.Wrap(zerr.New("inner"), "outer"), "key", "value")
	assert.Equal(t, []string{"outer", "inner"}, logger.ErrorChain(err))
	assert.Equal(t, []string{"plain"}, logger.ErrorChain(errors.New("plain")))
}

func TestFormatChain(t *testing.T) {
	got := logger.FormatChain([]string{"a\nb", "c"})
	assert.Equal(t, "Error: a\n       b\n\n  Caused by:\n    → c", got)
}
