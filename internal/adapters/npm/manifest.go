// Package npm reads package.json manifests from the project and its node_modules tree.
package npm

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// ManifestReader implements ports.ManifestReader with Node's lookup rules:
// node_modules/<name> is searched from the project root towards the filesystem root.
type ManifestReader struct {
	root string
}

// NewManifestReader creates a ManifestReader resolving from root.
func NewManifestReader(root string) *ManifestReader {
	return &ManifestReader{root: filepath.Clean(root)}
}

// Read returns the manifest of an installed package.
func (r *ManifestReader) Read(_ context.Context, packageName string) (*domain.Manifest, error) {
	dir, err := r.packageDir(packageName)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(dir, domain.ProjectManifestName)
	//nolint:gosec // Path is derived from the package lookup
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestNotFound.Error()), "package", packageName)
	}

	var manifest domain.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		wrapped := zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "package", packageName)
		return nil, zerr.With(wrapped, "path", manifestPath)
	}

	return &manifest, nil
}

// ResolveFile resolves rel inside the installed package and returns its absolute path.
func (r *ManifestReader) ResolveFile(_ context.Context, packageName, rel string) (string, error) {
	dir, err := r.packageDir(packageName)
	if err != nil {
		return "", err
	}

	target := filepath.Join(dir, filepath.FromSlash(rel))
	if within, relErr := filepath.Rel(dir, target); relErr != nil || escapesDir(within) {
		wrapped := zerr.With(domain.ErrPackageFileNotFound, "package", packageName)
		return "", zerr.With(wrapped, "file", rel)
	}

	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		if err == nil {
			err = fs.ErrNotExist
		}
		wrapped := zerr.With(zerr.Wrap(err, domain.ErrPackageFileNotFound.Error()), "package", packageName)
		return "", zerr.With(wrapped, "file", rel)
	}

	return target, nil
}

// packageDir finds the directory of an installed package.
func (r *ManifestReader) packageDir(packageName string) (string, error) {
	if packageName == "" || slices.Contains(strings.Split(packageName, "/"), "..") {
		return "", zerr.With(domain.ErrManifestNotFound, "package", packageName)
	}

	dir := r.root
	for {
		candidate := filepath.Join(dir, domain.NodeModulesDirName, filepath.FromSlash(packageName))
		if _, err := os.Stat(filepath.Join(candidate, domain.ProjectManifestName)); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrManifestNotFound.Error()), "package", packageName)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", zerr.With(domain.ErrManifestNotFound, "package", packageName)
}

// escapesDir reports whether a path relative to a directory leaves it.
func escapesDir(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
