package ports

import "go.trai.ch/forge/internal/core/domain"

// StateStore persists the record of the last successful build per build directory.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Get retrieves the record for buildDir.
	// Returns nil, nil if not found.
	Get(root, buildDir string) (*domain.BuildRecord, error)

	// Put stores the record.
	Put(root string, record domain.BuildRecord) error
}
