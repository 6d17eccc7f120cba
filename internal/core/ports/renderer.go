package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples span collection from presentation so a run can be shown
// either decorated for a terminal or plain for CI logs.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes buffered output. No events are accepted afterwards.
	Stop() error

	// OnPlanEmit is called once the targets to make are known.
	// targets: names in execution order
	// deps: prerequisite map (target -> prerequisites)
	// requested: the names asked for on the command line
	OnPlanEmit(targets []string, deps map[string][]string, requested []string)

	// OnTaskStart is called when a target begins.
	// requiredBy names the target that listed it as a prerequisite, or is empty
	// for targets requested directly.
	OnTaskStart(spanID, requiredBy, name string, startTime time.Time)

	// OnTaskLog is called with output of a target (may contain partial lines).
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a target finishes; err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
