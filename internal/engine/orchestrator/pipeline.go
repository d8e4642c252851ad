package orchestrator

import (
	"strconv"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/toolchain"
)

// Pipeline is the fully assembled set of commands for one plan.
type Pipeline struct {
	Strategy  string
	Generator string
	// Env is host, toolchain and user layers composed in that order.
	Env       domain.Environment
	Configure domain.Command
	Build     domain.Command
	Package   domain.Command
}

// Prepare resolves the strategy, the generator and the tools, and assembles
// every command without touching the filesystem or spawning anything.
// All failures are reported in one *domain.PlanError.
func (o *Orchestrator) Prepare(p domain.BuildPlan, host domain.Host) (*Pipeline, error) { //nolint:gocritic // hugeParam
	strategy, err := toolchain.Select(p, toolchain.Discovery{Locator: o.locator, Env: host.Env})
	if err != nil {
		return nil, domain.NewPlanError(err)
	}

	var violations []error

	generator, err := strategy.Generator(p)
	violations = append(violations, err)

	layer, err := strategy.ConfigureEnv(p)
	violations = append(violations, err)

	configureTool, ok := toolchain.ResolveConfigureTool(p, o.locator)
	if !ok {
		violations = append(violations, domain.Violation(domain.ErrToolNotFound, "qt-cmake or cmake"))
	}
	buildTool, ok := toolchain.ResolveBuildTool(p, o.locator)
	if !ok {
		violations = append(violations, domain.Violation(domain.ErrToolNotFound, "cmake"))
	}

	if err := domain.NewPlanError(violations...); err != nil {
		return nil, err
	}

	env := domain.ComposeEnv(host.Env, layer, p.UserEnv())
	command := func(phase domain.Phase, args []string) domain.Command {
		return domain.Command{Phase: phase, Args: args, Dir: p.ProjectRoot, Env: env, DryRun: p.DryRun}
	}

	return &Pipeline{
		Strategy:  strategy.Name(),
		Generator: generator,
		Env:       env,
		Configure: command(domain.PhaseConfigure, configureArgs(p, configureTool, strategy.ConfigureArgs(p, generator))),
		Build:     command(domain.PhaseBuild, buildArgs(p, buildTool, strategy.BuildArgs(p))),
		Package:   command(domain.PhasePackage, packageArgs(p, buildTool, strategy.BuildArgs(p))),
	}, nil
}

// configureArgs lays out the configure command. Build type and licence flags
// always precede the toolchain section, which precedes the user's extra arguments.
func configureArgs(p domain.BuildPlan, tool string, toolchainArgs []string) []string { //nolint:gocritic // hugeParam
	args := []string{
		tool,
		"-S", p.ProjectRoot,
		"-B", p.BuildDir,
		"-DCMAKE_BUILD_TYPE=" + string(p.Kind),
		"-DBUILD_GPL3=" + onOff(p.GPLOnly),
	}
	if p.Production {
		args = append(args, "-DPRODUCTION_OPTIMIZATION=ON")
	}
	if p.Sanitizer {
		args = append(args, "-DDEBUG_SANITIZER=ON")
	}
	args = append(args, toolchainArgs...)
	return append(args, p.ExtraArgs...)
}

func buildArgs(p domain.BuildPlan, tool string, strategyArgs []string) []string { //nolint:gocritic // hugeParam
	args := []string{tool, "--build", p.BuildDir, "--parallel", strconv.Itoa(p.Jobs)}
	args = append(args, strategyArgs...)
	if p.Verbose {
		args = append(args, "--verbose")
	}
	return args
}

func packageArgs(p domain.BuildPlan, tool string, strategyArgs []string) []string { //nolint:gocritic // hugeParam
	args := []string{tool, "--build", p.BuildDir, "--target", "package"}
	return append(args, strategyArgs...)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
