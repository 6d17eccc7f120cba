package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/docmk/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/docmk/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/docmk/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/docmk/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/docmk/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/docmk/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			fs.NodeID,
			logger.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			shell.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	fileSystem, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, fileSystem, log, w), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          app,
		Logger:       log,
		ConfigLoader: loader,
		Executor:     executor,
	}, nil
}
