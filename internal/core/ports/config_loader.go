package ports

import "go.trai.ch/docmk/internal/core/domain"

// ConfigLoader defines the interface for loading the build variables.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the settings for the docs tree containing cwd.
	Load(cwd string) (*domain.Settings, error)
}
