package ports

import "context"

// Converter turns TypeScript declarations into Flow library definitions.
//
//go:generate go run go.uber.org/mock/mockgen -source=converter.go -destination=mocks/mock_converter.go -package=mocks
type Converter interface {
	// Compile converts a TypeScript declaration source into Flow.
	Compile(ctx context.Context, source string) (string, error)

	// Format pretty-prints converted Flow code.
	Format(ctx context.Context, code string) (string, error)
}
