package ports

import "go.trai.ch/flowlock/internal/core/domain"

// ConfigLoader defines the interface for loading the tool configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the project root from cwd and returns its configuration.
	Load(cwd string) (*domain.Config, error)
}
