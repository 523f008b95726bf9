package npm

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// ProjectLoader implements ports.ProjectLoader for <root>/package.json.
type ProjectLoader struct {
	root string
}

// NewProjectLoader creates a ProjectLoader for the project at root.
func NewProjectLoader(root string) *ProjectLoader {
	return &ProjectLoader{root: root}
}

// Load reads the project manifest, keeping dependency declaration order.
func (l *ProjectLoader) Load(_ context.Context) (*domain.Project, error) {
	path := filepath.Join(l.root, domain.ProjectManifestName)

	//nolint:gosec // Path is the project manifest
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrProjectManifestNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrProjectManifestNotFound.Error()), "path", path)
	}

	var header struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrProjectManifestParseFailed.Error()), "path", path)
	}

	deps, err := dependencyKeys(data, "dependencies")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrProjectManifestParseFailed.Error()), "path", path)
	}
	devDeps, err := dependencyKeys(data, "devDependencies")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrProjectManifestParseFailed.Error()), "path", path)
	}

	return &domain.Project{
		Name:            header.Name,
		Dependencies:    deps,
		DevDependencies: devDeps,
	}, nil
}

// dependencyKeys lists the keys of a top-level object field in document order.
func dependencyKeys(data []byte, field string) ([]string, error) {
	_, dataType, _, err := jsonparser.Get(data, field)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) || dataType == jsonparser.Null {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "malformed field"), "field", field)
	}
	if dataType != jsonparser.Object {
		return nil, zerr.With(zerr.New("field is not an object"), "field", field)
	}

	var keys []string
	err = jsonparser.ObjectEach(data, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
		keys = append(keys, string(key))
		return nil
	}, field)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "malformed field"), "field", field)
	}

	return keys, nil
}
