package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docmk/cmd/docmk/commands"
	"go.trai.ch/docmk/internal/adapters/watcher"
	"go.trai.ch/docmk/internal/app"
	"go.trai.ch/docmk/internal/build"
)

type mockApp struct {
	runFunc   func(ctx context.Context, args []string, opts app.RunOptions) error
	listFunc  func(ctx context.Context, opts app.Options) error
	watchFunc func(ctx context.Context, args []string, opts app.WatchOptions) error
}

func (m *mockApp) Run(ctx context.Context, args []string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, args, opts)
	}
	return nil
}

func (m *mockApp) List(ctx context.Context, opts app.Options) error {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, args []string, opts app.WatchOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, args, opts)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedArgs []string

		mock := &mockApp{
			runFunc: func(_ context.Context, args []string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedArgs = args
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"run", "-n", "-k", "-C", "docs", "--paper", "a4", "--output", "plain",
			"SPHINXOPTS=-W", "html", "pdf",
		})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, capturedOpts.DryRun)
		assert.True(t, capturedOpts.KeepGoing)
		assert.Equal(t, "docs", capturedOpts.Dir)
		assert.Equal(t, "plain", capturedOpts.OutputMode)
		assert.Equal(t, "pretty", capturedOpts.LogFormat)
		assert.Equal(t, map[string]string{"PAPER": "a4"}, capturedOpts.Variables)
		assert.Equal(t, []string{"SPHINXOPTS=-W", "html", "pdf"}, capturedArgs)
	})

	t.Run("no targets reaches the app", func(t *testing.T) {
		called := false
		mock := &mockApp{
			runFunc: func(_ context.Context, args []string, opts app.RunOptions) error {
				called = true
				assert.Empty(t, args)
				assert.Empty(t, opts.Variables)
				assert.Equal(t, ".", opts.Dir)
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})
		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, called)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "html"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.ErrorContains(t, err, "simulated error")
	})

	t.Run("help", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"run", "--help"})

		require.NoError(t, cli.Execute(context.Background()))

		g := goldie.New(t)
		g.Assert(t, "run_help", buf.Bytes())
	})
}

func TestCommands_List(t *testing.T) {
	var captured app.Options
	mock := &mockApp{
		listFunc: func(_ context.Context, opts app.Options) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"list", "--sphinxbuild", "python -m sphinx", "--log-format", "json"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, map[string]string{"SPHINXBUILD": "python -m sphinx"}, captured.Variables)
	assert.Equal(t, "json", captured.LogFormat)

	cli = commands.New(mock)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"list", "html"})
	require.Error(t, cli.Execute(context.Background()))
}

func TestCommands_Watch(t *testing.T) {
	var captured app.WatchOptions
	var capturedArgs []string
	mock := &mockApp{
		watchFunc: func(_ context.Context, args []string, opts app.WatchOptions) error {
			captured = opts
			capturedArgs = args
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"watch", "--sphinxopts", "-j auto", "latex"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, watcher.DefaultDebounceWindow, captured.Debounce)
	assert.Equal(t, map[string]string{"SPHINXOPTS": "-j auto"}, captured.Variables)
	assert.Equal(t, []string{"latex"}, capturedArgs)

	cli = commands.New(mock)
	cli.SetArgs([]string{"watch", "--debounce", "1s", "-k"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, time.Second, captured.Debounce)
	assert.True(t, captured.KeepGoing)
	assert.Empty(t, capturedArgs)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "docmk version "+build.Version)
}
