package ports

import "context"

// ArtifactStore reads declaration sources and writes generated definitions.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifact.go -destination=mocks/mock_artifact.go -package=mocks
type ArtifactStore interface {
	// Read returns the contents of the file at path.
	// Relative paths are resolved against the project root.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write stores data at path, creating parent directories.
	// It reports whether the file content changed.
	Write(ctx context.Context, path string, data []byte) (bool, error)
}
