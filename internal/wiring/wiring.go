// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/docmk/internal/adapters/config"
	_ "go.trai.ch/docmk/internal/adapters/fs"
	_ "go.trai.ch/docmk/internal/adapters/logger"
	_ "go.trai.ch/docmk/internal/adapters/shell"
	_ "go.trai.ch/docmk/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/docmk/internal/app"
)
