package ports

import "context"

// PackageInstaller adds packages to the project.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type PackageInstaller interface {
	// AddDevDependency installs packageName as a development dependency.
	AddDevDependency(ctx context.Context, packageName string) error
}
