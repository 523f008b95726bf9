package ports

import "go.trai.ch/flowlock/internal/core/domain"

// LockfileStore is the durable storage of the lockfile.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockfileStore interface {
	// Load reads the lockfile. A missing lockfile yields domain.NewLockfile().
	Load() (*domain.Lockfile, error)

	// Save writes the lockfile atomically.
	Save(lock *domain.Lockfile) error
}
