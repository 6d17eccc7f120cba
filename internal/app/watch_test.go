package app_test

import (
	"context"
	"iter"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docmk/internal/app"
	"go.trai.ch/docmk/internal/core/domain"
	"go.trai.ch/docmk/internal/core/ports"
	"go.uber.org/mock/gomock"
)

func eventStream(ctx context.Context, events <-chan ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-events:
				if !yield(ev) {
					return
				}
			}
		}
	}
}

func TestApp_Watch_RebuildsOnChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectSettings(".")
		ran := f.recordCommands()
		f.fs.EXPECT().MkdirAll(gomock.Any()).Return(nil).AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := make(chan ports.WatchEvent)
		f.watcher.EXPECT().Start(gomock.Any(), "/docs", []string{"_build", "api/generated"}).Return(nil)
		f.watcher.EXPECT().Events().Return(eventStream(ctx, events))
		f.watcher.EXPECT().Stop().Return(nil)
		f.logger.EXPECT().Info("conf.py and 1 more changed, rebuilding")

		done := make(chan error, 1)
		go func() {
			done <- f.app.Watch(ctx, []string{"changes"}, app.WatchOptions{Debounce: 100 * time.Millisecond})
		}()

		synctest.Wait()
		assert.Len(t, *ran, 1, "initial build")

		events <- ports.WatchEvent{Path: "/docs/index.rst", Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: "/docs/conf.py", Operation: ports.OpWrite}
		synctest.Wait()
		assert.Len(t, *ran, 1, "still inside the debounce window")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, *ran, 2)

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_DefaultsToHTMLAndSurvivesFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectSettings(".")
		f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.ErrCommandFailed)
		f.logger.EXPECT().Warn("build failed; waiting for changes")

		ctx, cancel := context.WithCancel(context.Background())

		f.watcher.EXPECT().Start(gomock.Any(), "/docs", gomock.Any()).Return(nil)
		f.watcher.EXPECT().Events().Return(eventStream(ctx, nil))
		f.watcher.EXPECT().Stop().Return(nil)

		done := make(chan error, 1)
		go func() {
			done <- f.app.Watch(ctx, nil, app.WatchOptions{})
		}()

		synctest.Wait()
		assert.Contains(t, f.stderr.String(), "docmk: *** [api]")

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_StartError(t *testing.T) {
	f := newFixture(t)
	f.expectSettings(".")
	f.recordCommands()
	f.fs.EXPECT().MkdirAll(gomock.Any()).Return(nil).AnyTimes()
	f.watcher.EXPECT().Start(gomock.Any(), "/docs", gomock.Any()).Return(domain.ErrWatcherStartFailed)

	err := f.app.Watch(context.Background(), []string{"changes"}, app.WatchOptions{})
	require.ErrorIs(t, err, domain.ErrWatcherStartFailed)
}
