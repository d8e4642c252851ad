package toolchain

import "go.trai.ch/forge/internal/core/domain"

// Generic is the strategy of mac and linux builds. It changes no environment
// and needs no build arguments.
type Generic struct {
	base
}

// NewGeneric returns the Generic strategy.
func NewGeneric(d Discovery) *Generic {
	return &Generic{base: newBase("generic", []string{domain.GeneratorNinja, domain.GeneratorUnixMakefiles}, d)}
}
