package ports

import (
	"context"

	"go.trai.ch/flowlock/internal/core/domain"
)

// ProjectLoader reads the project's own manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=project_loader.go -destination=mocks/mock_project_loader.go -package=mocks
type ProjectLoader interface {
	// Load returns the project with dependency names in declaration order.
	Load(ctx context.Context) (*domain.Project, error)
}
