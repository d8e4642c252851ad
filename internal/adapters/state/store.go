// Package state persists the record of the last successful build per build directory.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.StateStore with one JSON file per build directory
// under <root>/.forge/builds.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the record for buildDir. A missing record is not an error.
func (s *Store) Get(root, buildDir string) (*domain.BuildRecord, error) {
	filename := s.filename(root, buildDir)
	//nolint:gosec // Path is constructed from the project root and a hashed name
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(domain.Cause(domain.ErrStoreReadFailed, err), "path", filename)
	}

	var rec domain.BuildRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.With(domain.Cause(domain.ErrStoreUnmarshalFailed, err), "path", filename)
	}

	return &rec, nil
}

// Put stores the record, replacing any previous one for the same build directory.
func (s *Store) Put(root string, rec domain.BuildRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return domain.Cause(domain.ErrStoreMarshalFailed, err)
	}

	filename := s.filename(root, rec.BuildDir)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(domain.Cause(domain.ErrStoreCreateFailed, err), "path", dir)
	}

	// Write then rename so an interrupted run never leaves a truncated record.
	tmp, err := os.CreateTemp(dir, ".record-*")
	if err != nil {
		return zerr.With(domain.Cause(domain.ErrStoreWriteFailed, err), "path", filename)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(domain.Cause(domain.ErrStoreWriteFailed, err), "path", filename)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(domain.Cause(domain.ErrStoreWriteFailed, err), "path", filename)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(domain.Cause(domain.ErrStoreWriteFailed, err), "path", filename)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return zerr.With(domain.Cause(domain.ErrStoreWriteFailed, err), "path", filename)
	}

	return nil
}

func (s *Store) filename(root, buildDir string) string {
	name := strconv.FormatUint(xxhash.Sum64String(filepath.Clean(buildDir)), 16)
	return filepath.Join(root, domain.DefaultBuildsPath(), name+".json")
}
