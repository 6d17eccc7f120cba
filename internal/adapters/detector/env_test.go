package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docmk/internal/adapters/detector"
	"go.trai.ch/docmk/internal/core/domain"
)

func fakeEnv(tty bool, vars map[string]string) detector.Environment {
	return detector.Environment{
		IsTerminal: func(int) bool { return tty },
		Getenv:     func(k string) string { return vars[k] },
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		tty      bool
		vars     map[string]string
		expected detector.OutputMode
	}{
		{name: "terminal", tty: true, expected: detector.ModeTTY},
		{name: "pipe", tty: false, expected: detector.ModePlain},
		{name: "CI=true forces plain", tty: true, vars: map[string]string{"CI": "true"}, expected: detector.ModePlain},
		{name: "CI=1 forces plain", tty: true, vars: map[string]string{"CI": "1"}, expected: detector.ModePlain},
		{name: "CI=false keeps tty", tty: true, vars: map[string]string{"CI": "false"}, expected: detector.ModeTTY},
		{name: "dumb terminal", tty: true, vars: map[string]string{"TERM": "dumb"}, expected: detector.ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.Detect(fakeEnv(tt.tty, tt.vars)))
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		flag     string
		expected detector.OutputMode
	}{
		{flag: "", expected: detector.ModeAuto},
		{flag: "auto", expected: detector.ModeAuto},
		{flag: "tty", expected: detector.ModeTTY},
		{flag: "plain", expected: detector.ModePlain},
		{flag: "ci", expected: detector.ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			mode, err := detector.ParseMode(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}

	_, err := detector.ParseMode("tui")
	require.ErrorContains(t, err, domain.ErrInvalidOutputMode.Error())
}

func TestResolveMode(t *testing.T) {
	assert.Equal(t, detector.ModeTTY, detector.ResolveMode(detector.ModeTTY, detector.ModeAuto))
	assert.Equal(t, detector.ModePlain, detector.ResolveMode(detector.ModeTTY, detector.ModePlain))
	assert.Equal(t, detector.ModeTTY, detector.ResolveMode(detector.ModePlain, detector.ModeTTY))
	assert.Equal(t, "plain", detector.ModePlain.String())
}
