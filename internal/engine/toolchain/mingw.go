package toolchain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
)

// MinGW is the strategy for GCC builds on windows.
type MinGW struct {
	base
}

// NewMinGW returns the MinGW strategy.
func NewMinGW(d Discovery) *MinGW {
	return &MinGW{base: newBase("mingw", []string{domain.GeneratorNinja, domain.GeneratorMinGWMakefiles}, d)}
}

// ConfigureEnv puts the compiler directory first, then the Qt binaries, then the inherited PATH.
func (m *MinGW) ConfigureEnv(p domain.BuildPlan) (domain.EnvLayer, error) { //nolint:gocritic // hugeParam
	var prefix []string
	if p.QtToolsRoot != "" {
		prefix = append(prefix, filepath.Join(p.QtToolsRoot, "bin"))
	}
	if p.QtRoot != "" {
		prefix = append(prefix, filepath.Join(p.QtRoot, "bin"))
	}
	if len(prefix) == 0 {
		return domain.EnvLayer{}, nil
	}

	if inherited := m.discovery.Env.Get("PATH"); inherited != "" {
		prefix = append(prefix, inherited)
	}
	return domain.EnvLayer{
		Set: map[string]string{"PATH": strings.Join(prefix, p.Platform.PathListSeparator())},
	}, nil
}
