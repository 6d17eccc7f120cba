package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/docmk/internal/adapters/fs"     //nolint:depguard // Wired in adapter layer
	"go.trai.ch/docmk/internal/adapters/logger" //nolint:depguard // Wired in adapter layer
	"go.trai.ch/docmk/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(walker, hasher, log), nil
		},
	})
}
