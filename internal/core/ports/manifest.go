// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/flowlock/internal/core/domain"
)

// ManifestReader locates installed packages and their published files.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// Read returns the manifest of an installed package.
	// Returns an error wrapping domain.ErrManifestNotFound if the package is not installed.
	Read(ctx context.Context, packageName string) (*domain.Manifest, error)

	// ResolveFile resolves rel against the installed package's directory.
	// Returns an error if the package or the file does not exist.
	ResolveFile(ctx context.Context, packageName, rel string) (string, error)
}
