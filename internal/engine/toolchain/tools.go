package toolchain

import (
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

// ResolveConfigureTool returns the executable of the configure step:
// explicit qt-cmake, qt-cmake on PATH, explicit cmake, then cmake on PATH.
// PATH lookups are skipped on windows, where tool paths are explicit.
func ResolveConfigureTool(p domain.BuildPlan, locator ports.ToolLocator) (string, bool) { //nolint:gocritic // hugeParam
	search := p.Platform != domain.PlatformWindows
	if p.Tools.QtCMake != "" {
		return p.Tools.QtCMake, true
	}
	if search {
		if path, ok := locator.LookPath("qt-cmake"); ok {
			return path, true
		}
	}
	return resolveCMake(p, locator, search)
}

// ResolveBuildTool returns the executable of the build and package steps:
// explicit cmake, then cmake on PATH outside windows.
func ResolveBuildTool(p domain.BuildPlan, locator ports.ToolLocator) (string, bool) { //nolint:gocritic // hugeParam
	return resolveCMake(p, locator, p.Platform != domain.PlatformWindows)
}

func resolveCMake(p domain.BuildPlan, locator ports.ToolLocator, search bool) (string, bool) { //nolint:gocritic // hugeParam
	if p.Tools.CMake != "" {
		return p.Tools.CMake, true
	}
	if search {
		return locator.LookPath("cmake")
	}
	return "", false
}
