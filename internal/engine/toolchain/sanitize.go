package toolchain

import (
	"regexp"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
)

// msysBinPattern matches the MSYS2 usr/bin and mingw64/bin directories. Their
// sh.exe and link.exe put CMake into MSYS mode or shadow the MSVC linker.
var msysBinPattern = regexp.MustCompile(`(?i)(msys2|msys64)[\\/](usr|mingw64)[\\/]bin`)

// conflictingVars switch CMake and child shells into MSYS behavior.
var conflictingVars = []string{"MSYSTEM", "CHERE_INVOKING", "MSYS2_PATH_TYPE", "SHELL"}

// FilterPath splits path and drops empty and MSYS2 tool directories, keeping order.
func FilterPath(path, sep string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || msysBinPattern.MatchString(part) {
			continue
		}
		out = append(out, part)
	}
	return out
}

// ConflictingVars returns the MSYS session variables that are set in env.
func ConflictingVars(env domain.Environment) []string {
	var out []string
	for _, name := range conflictingVars {
		if _, ok := env.Lookup(name); ok {
			out = append(out, name)
		}
	}
	return out
}
