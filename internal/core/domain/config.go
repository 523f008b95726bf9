package domain

import (
	"path/filepath"
	"slices"
)

// PackageManager names a supported package manager client.
type PackageManager string

const (
	// PackageManagerYarn installs with "yarn add <pkg> -D".
	PackageManagerYarn PackageManager = "yarn"
	// PackageManagerNPM installs with "npm install --save-dev <pkg>".
	PackageManagerNPM PackageManager = "npm"
	// PackageManagerPNPM installs with "pnpm add -D <pkg>".
	PackageManagerPNPM PackageManager = "pnpm"
)

// Commands holds the argv prefixes used to invoke external tools.
type Commands struct {
	FlowTyped []string
	Flowgen   []string
	Formatter []string
}

// Config is the resolved tool configuration for one project.
type Config struct {
	// Root is the absolute project root (the directory of package.json).
	Root string

	// Lockfile is the lockfile path relative to Root.
	Lockfile string

	// FlowTypedDir is the library definition directory relative to Root.
	FlowTypedDir string

	// PackageManager selects the client used to add @types packages.
	PackageManager PackageManager

	// Commands are the external tool invocations.
	Commands Commands

	// Environment holds extra variables for subprocesses.
	Environment map[string]string

	// Journal is an optional path, relative to Root, receiving the progress event stream.
	Journal string
}

// DefaultConfig returns the configuration used when no flowlock.yaml is present.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:           root,
		Lockfile:       DefaultLockfilePath(),
		FlowTypedDir:   FlowTypedDirName,
		PackageManager: PackageManagerYarn,
		Commands: Commands{
			FlowTyped: []string{"flow-typed"},
			Flowgen:   []string{"flowgen"},
			Formatter: []string{"prettier", "--parser", "flow"},
		},
		Environment: map[string]string{},
	}
}

// Abs joins a project-relative path onto Root.
func (c *Config) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// IsValid reports whether pm is a supported package manager.
func (pm PackageManager) IsValid() bool {
	return slices.Contains([]PackageManager{PackageManagerYarn, PackageManagerNPM, PackageManagerPNPM}, pm)
}
