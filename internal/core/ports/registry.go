package ports

import "context"

// TypeRegistry is the community type-definition registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type TypeRegistry interface {
	// Install fetches the registry definition for the canonical package key.
	// Any error means the registry could not provide one.
	Install(ctx context.Context, key string) error

	// CreateStub generates a stub definition for key and returns its project-relative path.
	CreateStub(ctx context.Context, key string) (string, error)
}
