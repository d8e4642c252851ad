// Package toolchain holds the per-compiler build policies: generator choice,
// configure arguments, environment changes and build arguments.
package toolchain

import (
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Strategy is the closed set of toolchain policies: Generic, MinGW and MSVC.
// Every method is a pure function of the plan and the discovery snapshot.
type Strategy interface {
	// Name identifies the strategy in logs and errors.
	Name() string
	// Generator returns the plan's generator override or the first available preferred one.
	Generator(p domain.BuildPlan) (string, error)
	// ConfigureArgs returns the toolchain section of the configure command.
	ConfigureArgs(p domain.BuildPlan, generator string) []string
	// ConfigureEnv returns the environment changes applied on top of the host environment.
	ConfigureEnv(p domain.BuildPlan) (domain.EnvLayer, error)
	// BuildArgs returns the arguments appended to build and package commands.
	BuildArgs(p domain.BuildPlan) []string
}

// Discovery is what strategies may query about the host.
type Discovery struct {
	Locator ports.ToolLocator
	// Env is the inherited host environment.
	Env domain.Environment
}

// Select returns the strategy for the plan's platform and toolchain.
// Windows requires a toolchain; other platforms must not set one.
func Select(p domain.BuildPlan, d Discovery) (Strategy, error) { //nolint:gocritic // hugeParam
	if p.Platform == domain.PlatformWindows {
		switch p.Toolchain {
		case domain.ToolchainMSVC:
			return NewMSVC(d), nil
		case domain.ToolchainMinGW:
			return NewMinGW(d), nil
		case domain.ToolchainNone:
			return nil, domain.ErrToolchainRequired
		default:
			return nil, domain.Violation(domain.ErrInvalidToolchain, "toolchain "+string(p.Toolchain))
		}
	}
	if p.Toolchain != domain.ToolchainNone {
		return nil, domain.Violation(domain.ErrToolchainNotAllowed, "toolchain "+string(p.Toolchain)+" on "+string(p.Platform))
	}
	return NewGeneric(d), nil
}

// base holds what the three strategies share.
type base struct {
	name       string
	generators []string
	discovery  Discovery
	picker     *Picker
}

func newBase(name string, generators []string, d Discovery) base {
	return base{
		name:       name,
		generators: generators,
		discovery:  d,
		picker:     NewPicker(d.Locator, d.Env),
	}
}

func (b base) Name() string {
	return b.name
}

func (b base) Generator(p domain.BuildPlan) (string, error) { //nolint:gocritic // hugeParam
	if p.Generator != "" {
		return p.Generator, nil
	}
	if g, ok := b.picker.Pick(b.generators); ok {
		return g, nil
	}
	return "", zerr.With(
		domain.Violation(domain.ErrNoGenerator, b.name+" toolchain"),
		"candidates", strings.Join(b.generators, ", "),
	)
}

// ConfigureArgs emits the generator, the SDK prefix path and every explicit tool path.
func (b base) ConfigureArgs(p domain.BuildPlan, generator string) []string { //nolint:gocritic // hugeParam
	args := []string{"-G", generator}
	if p.QtRoot != "" {
		args = append(args, "-DCMAKE_PREFIX_PATH="+p.QtRoot)
	}
	if p.Tools.QMake != "" {
		args = append(args, "-DQT_QMAKE_EXECUTABLE:FILEPATH="+p.Tools.QMake)
	}
	if p.Tools.CCompiler != "" {
		args = append(args, "-DCMAKE_C_COMPILER:FILEPATH="+p.Tools.CCompiler)
	}
	if p.Tools.CXXCompiler != "" {
		args = append(args, "-DCMAKE_CXX_COMPILER:FILEPATH="+p.Tools.CXXCompiler)
	}

	switch {
	case p.Tools.MakeProgram != "":
		args = append(args, "-DCMAKE_MAKE_PROGRAM:FILEPATH="+p.Tools.MakeProgram)
	case domain.IsNinja(generator):
		// Pin the ninja found now so a different one earlier on the build PATH is not used.
		if ninja, ok := b.discovery.Locator.LookPath("ninja"); ok {
			args = append(args, "-DCMAKE_MAKE_PROGRAM="+ninja)
		}
	}
	return args
}

func (b base) ConfigureEnv(domain.BuildPlan) (domain.EnvLayer, error) { //nolint:gocritic // hugeParam
	return domain.EnvLayer{}, nil
}

func (b base) BuildArgs(domain.BuildPlan) []string { //nolint:gocritic // hugeParam
	return nil
}
