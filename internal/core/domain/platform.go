package domain

import (
	"strings"
)

// Platform is the target operating system of a build.
type Platform string

const (
	// PlatformMac targets macOS.
	PlatformMac Platform = "mac"
	// PlatformWindows targets Windows.
	PlatformWindows Platform = "windows"
	// PlatformLinux targets Linux.
	PlatformLinux Platform = "linux"
)

// ParsePlatform maps a user supplied platform name onto a Platform.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mac", "macos", "darwin", "osx":
		return PlatformMac, nil
	case "windows", "win", "win32":
		return PlatformWindows, nil
	case "linux":
		return PlatformLinux, nil
	default:
		return "", Violation(ErrInvalidPlatform, "platform "+quote(name))
	}
}

// PathListSeparator returns the PATH separator used on the platform.
func (p Platform) PathListSeparator() string {
	if p == PlatformWindows {
		return ";"
	}
	return ":"
}

// BuildKind is the CMake build type.
type BuildKind string

const (
	// BuildRelease is an optimized build.
	BuildRelease BuildKind = "Release"
	// BuildDebug is a debug build.
	BuildDebug BuildKind = "Debug"
)

// ParseBuildKind accepts Release or Debug in any letter case.
func ParseBuildKind(name string) (BuildKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "release":
		return BuildRelease, nil
	case "debug":
		return BuildDebug, nil
	default:
		return "", Violation(ErrInvalidBuildKind, "build type "+quote(name))
	}
}

// DirName is the lowercase name used in synthesized build directories.
func (k BuildKind) DirName() string {
	return strings.ToLower(string(k))
}

// Toolchain is the compiler family used on windows.
type Toolchain string

const (
	// ToolchainNone is the implicit toolchain of mac and linux.
	ToolchainNone Toolchain = ""
	// ToolchainMSVC is the Microsoft Visual C++ toolchain.
	ToolchainMSVC Toolchain = "msvc"
	// ToolchainMinGW is the MinGW-w64 GCC toolchain.
	ToolchainMinGW Toolchain = "mingw"
)

// ParseToolchain maps a toolchain name. An empty name or "none" yields ToolchainNone.
func ParseToolchain(name string) (Toolchain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return ToolchainNone, nil
	case "msvc":
		return ToolchainMSVC, nil
	case "mingw", "mingw64":
		return ToolchainMinGW, nil
	default:
		return "", Violation(ErrInvalidToolchain, "toolchain "+quote(name))
	}
}

// String returns the toolchain name, or "default" when none is set.
func (t Toolchain) String() string {
	if t == ToolchainNone {
		return "default"
	}
	return string(t)
}

func quote(s string) string {
	return "\"" + s + "\""
}
