// Package lockfile implements durable storage of the resolution lockfile.
package lockfile

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.LockfileStore using a JSON file.
type Store struct {
	path string
}

// NewStore creates a new LockfileStore backed by the file at the given path.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Load reads the lockfile. A missing or empty file yields a fresh lockfile.
func (s *Store) Load() (*domain.Lockfile, error) {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewLockfile(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileReadFailed.Error()), "path", s.path)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return domain.NewLockfile(), nil
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "path", s.path)
	}

	if lock.Version > domain.LockfileVersion {
		versionErr := zerr.With(domain.ErrLockfileVersionUnsupported, "path", s.path)
		return nil, zerr.With(versionErr, "version", lock.Version)
	}

	// Older layouts carry the same tier maps; only the version number moves forward.
	lock.Version = domain.LockfileVersion
	lock.Normalize()

	return &lock, nil
}

// Save writes the lockfile with two-space indentation, atomically.
func (s *Store) Save(lock *domain.Lockfile) error {
	lock.Normalize()

	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error())
	}
	data = append(data, '\n')

	if err := atomicWriteFile(s.path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error()), "path", s.path)
	}

	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".flow-lock-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
