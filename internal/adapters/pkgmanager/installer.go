// Package pkgmanager adds development dependencies with the project's package manager.
package pkgmanager

import (
	"context"

	"go.trai.ch/flowlock/internal/adapters/shell"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Installer implements ports.PackageInstaller.
type Installer struct {
	runner  *shell.Runner
	manager domain.PackageManager
}

// NewInstaller creates an Installer for the configured package manager.
func NewInstaller(runner *shell.Runner, cfg *domain.Config) *Installer {
	return &Installer{
		runner:  runner,
		manager: cfg.PackageManager,
	}
}

// AddDevDependency installs packageName as a development dependency.
func (i *Installer) AddDevDependency(ctx context.Context, packageName string) error {
	if _, err := i.runner.Run(ctx, shell.Command{Args: AddDevArgs(i.manager, packageName)}); err != nil {
		wrapped := zerr.Wrap(err, domain.ErrTypesPackageInstallFailed.Error())
		wrapped = zerr.With(wrapped, "package", packageName)
		return zerr.With(wrapped, "package_manager", string(i.manager))
	}
	return nil
}

// AddDevArgs returns the argv that adds packageName as a development dependency.
func AddDevArgs(manager domain.PackageManager, packageName string) []string {
	switch manager {
	case domain.PackageManagerNPM:
		return []string{"npm", "install", "--save-dev", packageName}
	case domain.PackageManagerPNPM:
		return []string{"pnpm", "add", "-D", packageName}
	default:
		return []string{"yarn", "add", packageName, "-D"}
	}
}
