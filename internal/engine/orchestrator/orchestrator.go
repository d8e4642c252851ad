// Package orchestrator sequences the clean, configure, build, package and run phases.
package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// SpanName is the root span of one orchestration. Phase spans are named SpanName + "." + phase.
const SpanName = "forge"

// Orchestrator runs a validated plan. It never runs two phases at once and
// stops at the first failure.
type Orchestrator struct {
	runner  ports.CommandRunner
	locator ports.ToolLocator
	tracer  ports.Tracer
	logger  ports.Logger
}

// Report describes a completed orchestration.
type Report struct {
	Strategy  string
	Generator string
	// Phases lists the phases that completed, in order.
	Phases []domain.Phase
}

// New creates an Orchestrator.
func New(runner ports.CommandRunner, locator ports.ToolLocator, tracer ports.Tracer, logger ports.Logger) *Orchestrator {
	return &Orchestrator{
		runner:  runner,
		locator: locator,
		tracer:  tracer,
		logger:  logger,
	}
}

// Run executes the plan. The returned error is the first failure unchanged: a
// *domain.PlanError, a *domain.ExecutionError, or one matching domain.ErrInterrupted.
func (o *Orchestrator) Run(ctx context.Context, p domain.BuildPlan, host domain.Host) (*Report, error) { //nolint:gocritic // hugeParam
	if p.InfoOnly {
		return &Report{}, nil
	}

	pipe, err := o.Prepare(p, host)
	if err != nil {
		return nil, err
	}
	return o.Execute(ctx, p, pipe)
}

// Execute runs a pipeline assembled by Prepare for the same plan.
func (o *Orchestrator) Execute(ctx context.Context, p domain.BuildPlan, pipe *Pipeline) (*Report, error) { //nolint:gocritic // hugeParam
	report := &Report{Strategy: pipe.Strategy, Generator: pipe.Generator}

	ctx, span := o.tracer.Start(ctx, SpanName)
	defer span.End()
	span.SetAttribute("toolchain", pipe.Strategy)
	span.SetAttribute("generator", pipe.Generator)
	span.SetAttribute("build_dir", p.BuildDir)
	span.SetAttribute("dry_run", p.DryRun)

	if err := o.sequence(ctx, p, pipe, report); err != nil {
		span.RecordError(err)
		return report, err
	}
	return report, nil
}

func (o *Orchestrator) sequence(ctx context.Context, p domain.BuildPlan, pipe *Pipeline, report *Report) error { //nolint:gocritic // hugeParam
	if p.Clean {
		if err := o.phase(ctx, domain.PhaseClean, report, func(context.Context, ports.Span) error {
			return o.clean(p)
		}); err != nil {
			return err
		}
	}

	if err := o.phase(ctx, domain.PhaseConfigure, report, func(ctx context.Context, span ports.Span) error {
		if !p.DryRun {
			if err := os.MkdirAll(p.BuildDir, domain.DirPerm); err != nil {
				return zerr.With(domain.Cause(domain.ErrBuildDirCreateFailed, err), "path", p.BuildDir)
			}
		}
		return o.exec(ctx, span, pipe.Configure)
	}); err != nil {
		return err
	}

	if p.ConfigureOnly {
		return nil
	}

	if err := o.phase(ctx, domain.PhaseBuild, report, func(ctx context.Context, span ports.Span) error {
		return o.exec(ctx, span, pipe.Build)
	}); err != nil {
		return err
	}

	if p.CreatePackage {
		if err := o.phase(ctx, domain.PhasePackage, report, func(ctx context.Context, span ports.Span) error {
			return o.exec(ctx, span, pipe.Package)
		}); err != nil {
			return err
		}
	}

	if p.RunAfterBuild {
		return o.phase(ctx, domain.PhaseRun, report, func(ctx context.Context, span ports.Span) error {
			cmd, err := o.runCommand(p, pipe)
			if err != nil {
				return err
			}
			return o.exec(ctx, span, cmd)
		})
	}

	return nil
}

// phase runs fn inside a span and records the phase on success.
func (o *Orchestrator) phase(
	ctx context.Context,
	phase domain.Phase,
	report *Report,
	fn func(context.Context, ports.Span) error,
) error {
	if ctx.Err() != nil {
		return zerr.With(zerr.Wrap(domain.ErrInterrupted, string(phase)), "phase", string(phase))
	}

	ctx, span := o.tracer.Start(ctx, SpanName+"."+string(phase))
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}
	report.Phases = append(report.Phases, phase)
	return nil
}

func (o *Orchestrator) exec(ctx context.Context, span ports.Span, cmd domain.Command) error {
	span.SetAttribute("command", cmd.String())
	return o.runner.Run(ctx, cmd)
}

// clean removes the build directory. Dry runs only report what would be removed.
func (o *Orchestrator) clean(p domain.BuildPlan) error { //nolint:gocritic // hugeParam
	if _, err := os.Stat(p.BuildDir); errors.Is(err, fs.ErrNotExist) {
		o.logger.Debug("nothing to clean at " + p.BuildDir)
		return nil
	}

	if p.DryRun {
		o.logger.Info("[dry-run] remove " + p.BuildDir)
		return nil
	}

	o.logger.Info("removing " + p.BuildDir)
	if err := os.RemoveAll(p.BuildDir); err != nil {
		return zerr.With(domain.Cause(domain.ErrCleanFailed, err), "path", p.BuildDir)
	}
	return nil
}

// runCommand locates the built application. Dry runs skip the existence check.
func (o *Orchestrator) runCommand(p domain.BuildPlan, pipe *Pipeline) (domain.Command, error) { //nolint:gocritic // hugeParam
	appDir := filepath.Join(p.BuildDir, domain.ArtifactDirName)

	var path string
	switch p.Platform {
	case domain.PlatformMac:
		path = filepath.Join(appDir, p.AppName+".app")
	case domain.PlatformWindows:
		exe := p.AppName + ".exe"
		if isMultiConfig(pipe.Generator, p.BuildDir) {
			path = filepath.Join(appDir, string(p.Kind), exe)
		} else {
			path = filepath.Join(appDir, exe)
		}
	default:
		path = filepath.Join(appDir, p.AppName)
	}

	if !p.DryRun {
		if _, err := os.Stat(path); err != nil {
			return domain.Command{}, zerr.With(domain.Violation(domain.ErrArtifactNotFound, path), "path", path)
		}
	}

	args := []string{path}
	if p.Platform == domain.PlatformMac {
		args = []string{"open", path}
	}
	return domain.Command{
		Phase:  domain.PhaseRun,
		Args:   args,
		Dir:    p.ProjectRoot,
		Env:    pipe.Env,
		DryRun: p.DryRun,
	}, nil
}

// isMultiConfig reports whether the build tree keeps one output directory per build type.
func isMultiConfig(generator, buildDir string) bool {
	if domain.IsMultiConfig(generator) {
		return true
	}
	//nolint:gosec // Path is the build directory of the plan
	data, err := os.ReadFile(filepath.Join(buildDir, domain.CMakeCacheFileName))
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte("CMAKE_CONFIGURATION_TYPES"))
}
