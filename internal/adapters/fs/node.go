package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/docmk/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the recipe file system Graft node.
	NodeID graft.ID = "adapter.fs"
	// WalkerNodeID is the unique identifier for the directory walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the content hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystem, error) {
			return NewFileSystem(), nil
		},
	})

	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})
}
