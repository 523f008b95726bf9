// Package config provides the configuration loader for flowlock.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using an optional YAML file at the project root.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers the project root from cwd and applies flowlock.yaml on top of the defaults.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	root, found := findProjectRoot(absCwd)
	if !found {
		l.Logger.Debug("no " + domain.ProjectManifestName + " found, using " + absCwd + " as project root")
	}

	cfg := domain.DefaultConfig(root)

	configPath := filepath.Join(root, domain.ConfigFileName)
	data, err := os.ReadFile(configPath) //nolint:gosec // path is derived from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	var file Configfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	if err := apply(cfg, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	return cfg, nil
}

// findProjectRoot walks up from dir to the nearest directory containing package.json.
// When none exists, dir itself is the root.
func findProjectRoot(dir string) (string, bool) {
	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, domain.ProjectManifestName)); err == nil {
			return current, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, false
		}
		current = parent
	}
}

func apply(cfg *domain.Config, file *Configfile) error {
	if file.Lockfile != "" {
		cfg.Lockfile = filepath.ToSlash(file.Lockfile)
	}
	if file.FlowTypedDir != "" {
		cfg.FlowTypedDir = filepath.ToSlash(file.FlowTypedDir)
		if file.Lockfile == "" {
			cfg.Lockfile = cfg.FlowTypedDir + "/" + domain.LockfileName
		}
	}

	if file.PackageManager != "" {
		pm := domain.PackageManager(file.PackageManager)
		if !pm.IsValid() {
			return zerr.With(domain.ErrInvalidPackageManager, "package_manager", file.PackageManager)
		}
		cfg.PackageManager = pm
	}

	if len(file.Commands.FlowTyped) > 0 {
		cfg.Commands.FlowTyped = file.Commands.FlowTyped
	}
	if len(file.Commands.Flowgen) > 0 {
		cfg.Commands.Flowgen = file.Commands.Flowgen
	}
	if len(file.Commands.Formatter) > 0 {
		cfg.Commands.Formatter = file.Commands.Formatter
	}

	if file.Journal != "" {
		cfg.Journal = filepath.ToSlash(file.Journal)
	}

	for k, v := range file.Environment {
		cfg.Environment[k] = v
	}

	return nil
}
