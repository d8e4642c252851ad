package toolchain

import (
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

// Picker chooses the first generator whose build tool is present on the host.
type Picker struct {
	locator ports.ToolLocator
	env     domain.Environment
}

// NewPicker returns a Picker querying locator and env.
func NewPicker(locator ports.ToolLocator, env domain.Environment) *Picker {
	return &Picker{locator: locator, env: env}
}

// Available reports whether the tool behind generator can be found.
// Generators without a known tool are assumed to use the platform make.
func (p *Picker) Available(generator string) bool {
	switch {
	case domain.IsNinja(generator):
		return p.has("ninja")
	case generator == domain.GeneratorMinGWMakefiles:
		return p.has("mingw32-make")
	case generator == domain.GeneratorNMakeMakefiles:
		return p.has("nmake")
	case domain.IsVisualStudio(generator):
		if _, ok := p.env.Lookup("VCINSTALLDIR"); ok {
			return true
		}
		return p.has("vswhere")
	default:
		return true
	}
}

// Pick returns the first available candidate.
func (p *Picker) Pick(candidates []string) (string, bool) {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c != "" && p.Available(c) {
			return c, true
		}
	}
	return "", false
}

func (p *Picker) has(tool string) bool {
	_, ok := p.locator.LookPath(tool)
	return ok
}
