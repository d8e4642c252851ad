package toolchain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
)

// MSVCSessionMarkers are set by vcvarsall.bat and the Developer Command Prompt.
var MSVCSessionMarkers = []string{"VCINSTALLDIR", "VSINSTALLDIR", "VCToolsInstallDir"}

// MSVC is the strategy for Visual C++ builds on windows.
type MSVC struct {
	base
}

// NewMSVC returns the MSVC strategy.
func NewMSVC(d Discovery) *MSVC {
	return &MSVC{base: newBase("msvc", []string{
		domain.GeneratorNinja,
		domain.GeneratorNinjaMultiConfig,
		domain.GeneratorNMakeMakefiles,
	}, d)}
}

// Generator fails outside a developer session before any generator is probed.
func (m *MSVC) Generator(p domain.BuildPlan) (string, error) { //nolint:gocritic // hugeParam
	if err := m.checkSession(); err != nil {
		return "", err
	}
	return m.base.Generator(p)
}

// ConfigureEnv verifies the developer session, then removes the MSYS2 tool
// directories and session variables, then prepends the Qt binaries.
func (m *MSVC) ConfigureEnv(p domain.BuildPlan) (domain.EnvLayer, error) { //nolint:gocritic // hugeParam
	if err := m.checkSession(); err != nil {
		return domain.EnvLayer{}, err
	}

	sep := p.Platform.PathListSeparator()
	layer := domain.EnvLayer{Unset: ConflictingVars(m.discovery.Env)}

	var path []string
	if p.QtRoot != "" {
		path = append(path, filepath.Join(p.QtRoot, "bin"))
	}
	path = append(path, FilterPath(m.discovery.Env.Get("PATH"), sep)...)
	if len(path) > 0 {
		layer.Set = map[string]string{"PATH": strings.Join(path, sep)}
	}
	return layer, nil
}

// BuildArgs restates the build type, which multi-config generators need at build time.
func (m *MSVC) BuildArgs(p domain.BuildPlan) []string { //nolint:gocritic // hugeParam
	return []string{"--config", string(p.Kind)}
}

func (m *MSVC) checkSession() error {
	for _, name := range MSVCSessionMarkers {
		if m.discovery.Env.Get(name) != "" {
			return nil
		}
	}
	return domain.ErrMSVCSessionMissing
}
