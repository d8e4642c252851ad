package plan

import (
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
)

// FindProjectRoot returns the nearest ancestor of start (start included) that
// contains CMakeLists.txt, or start itself when there is none.
func FindProjectRoot(start string) string {
	dir := filepath.Clean(start)
	for {
		if info, err := os.Stat(filepath.Join(dir, domain.ProjectFileName)); err == nil && !info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Clean(start)
		}
		dir = parent
	}
}
