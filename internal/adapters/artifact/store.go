// Package artifact reads declaration sources and writes generated library definitions.
package artifact

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ArtifactStore on an afs service.
type Store struct {
	fs   afs.Service
	root string
}

// NewStore creates a Store resolving relative paths against root.
func NewStore(fs afs.Service, root string) *Store {
	return &Store{fs: fs, root: root}
}

// Read returns the contents of the file at path.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	location := s.resolve(path)
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "path", location)
	}
	return data, nil
}

// Write stores data at path unless the file already holds identical content.
func (s *Store) Write(ctx context.Context, path string, data []byte) (bool, error) {
	location := s.resolve(path)

	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", location)
	}
	if exists {
		current, readErr := s.fs.DownloadWithURL(ctx, location)
		if readErr == nil && xxhash.Sum64(current) == xxhash.Sum64(data) {
			return false, nil
		}
	}

	if err := s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", location)
	}
	return true, nil
}

func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, filepath.FromSlash(path))
}
