package domain

import "path/filepath"

const (
	// ForgeDirName is the name of the per-project metadata directory.
	ForgeDirName = ".forge"

	// BuildsDirName holds one record per build directory.
	BuildsDirName = "builds"

	// ProjectFileName marks a CMake project root.
	ProjectFileName = "CMakeLists.txt"

	// CMakeCacheFileName is written by the configure step into the build directory.
	CMakeCacheFileName = "CMakeCache.txt"

	// DefaultBuildDirName is the top-level directory of synthesized build directories.
	DefaultBuildDirName = "build"

	// ArtifactDirName is the subdirectory of the build directory holding the application.
	ArtifactDirName = "app"

	// DefaultAppName is the name of the produced application.
	DefaultAppName = "Serial-Studio"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ConfigFileNames are probed in the project root, in order, when no --config is given.
var ConfigFileNames = []string{"forge.yaml", "forge.yml", "forge.json", "forge.hcl"}

// DefaultBuildsPath returns the directory holding build records, relative to the project root.
// It joins .forge and builds.
func DefaultBuildsPath() string {
	return filepath.Join(ForgeDirName, BuildsDirName)
}

// SynthesizeBuildDir returns root/build/<platform>/[<toolchain>/]<kind>.
func SynthesizeBuildDir(root string, p Platform, tc Toolchain, kind BuildKind) string {
	segments := []string{root, DefaultBuildDirName, string(p)}
	if tc != ToolchainNone {
		segments = append(segments, string(tc))
	}
	segments = append(segments, kind.DirName())
	return filepath.Join(segments...)
}
