package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the read-only view of the disk the loader needs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the host filesystem.
type OSFS struct{}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path is supplied by the user on purpose
	return os.ReadFile(path)
}

// RootedFS serves the absolute paths below root from fsys, e.g. an fstest.MapFS.
type RootedFS struct {
	fsys fs.FS
	root string
}

// NewRootedFS mounts fsys at root.
func NewRootedFS(root string, fsys fs.FS) *RootedFS {
	return &RootedFS{fsys: fsys, root: filepath.Clean(root)}
}

// Stat returns file info for path.
func (r *RootedFS) Stat(path string) (fs.FileInfo, error) {
	name, err := r.name("stat", path)
	if err != nil {
		return nil, err
	}
	return fs.Stat(r.fsys, name)
}

// ReadFile reads the file at path.
func (r *RootedFS) ReadFile(path string) ([]byte, error) {
	name, err := r.name("open", path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(r.fsys, name)
}

// name maps path onto a slash-separated fs.FS name. Relative paths are taken
// as relative to root; anything outside root does not exist.
func (r *RootedFS) name(op, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}
	rel, err := filepath.Rel(r.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
	}
	return filepath.ToSlash(rel), nil
}
