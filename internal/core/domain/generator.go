package domain

import "strings"

// CMake generator names the strategies choose from.
const (
	GeneratorNinja            = "Ninja"
	GeneratorNinjaMultiConfig = "Ninja Multi-Config"
	GeneratorUnixMakefiles    = "Unix Makefiles"
	GeneratorMinGWMakefiles   = "MinGW Makefiles"
	GeneratorNMakeMakefiles   = "NMake Makefiles"
	GeneratorXcode            = "Xcode"
)

// IsNinja reports whether the generator is driven by the ninja tool.
func IsNinja(generator string) bool {
	return strings.HasPrefix(generator, GeneratorNinja)
}

// IsVisualStudio reports whether the generator targets a Visual Studio solution.
func IsVisualStudio(generator string) bool {
	return strings.HasPrefix(generator, "Visual Studio")
}

// IsMultiConfig reports whether the generator defers the build type to build time.
func IsMultiConfig(generator string) bool {
	return generator == GeneratorNinjaMultiConfig ||
		generator == GeneratorXcode ||
		IsVisualStudio(generator)
}
