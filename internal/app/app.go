// Package app implements the application layer for forge.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/orchestrator"
	"go.trai.ch/forge/internal/engine/plan"
	"go.trai.ch/zerr"
)

// PlanValidator rejects inconsistent plans.
type PlanValidator interface {
	Validate(p domain.BuildPlan) error
}

// App ties loading, resolution, validation and orchestration together.
type App struct {
	loader    ports.ConfigLoader
	host      ports.HostProbe
	validator PlanValidator
	orch      *orchestrator.Orchestrator
	store     ports.StateStore
	logger    ports.Logger
	out       io.Writer
	now       func() time.Time
}

// BuildRequest is one invocation as received from the command line.
type BuildRequest struct {
	// ConfigPath is the explicit --config value, empty for auto-discovery.
	ConfigPath string
	// Source overrides project root discovery.
	Source string
	// Overrides holds only the flags the user passed.
	Overrides domain.Layer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	host ports.HostProbe,
	validator PlanValidator,
	orch *orchestrator.Orchestrator,
	store ports.StateStore,
	logger ports.Logger,
) *App {
	return &App{
		loader:    loader,
		host:      host,
		validator: validator,
		orch:      orch,
		store:     store,
		logger:    logger,
		out:       os.Stdout,
		now:       time.Now,
	}
}

// WithOutput redirects the plan summary.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// Build resolves, validates and runs one build. Errors are returned unchanged
// so the caller can tell plan errors, execution errors and interruptions apart.
func (a *App) Build(ctx context.Context, req BuildRequest) error {
	host, err := a.host.Snapshot()
	if err != nil {
		return err
	}

	root := plan.FindProjectRoot(host.WorkDir)
	if req.Source != "" {
		root = req.Source
		if !filepath.IsAbs(root) {
			root = filepath.Join(host.WorkDir, root)
		}
		root = filepath.Clean(root)
	}

	cfg, err := a.loader.Load(root, plan.ExpandHome(req.ConfigPath, host.HomeDir))
	if err != nil {
		return domain.NewPlanError(err)
	}

	p, notes, err := plan.Resolve(plan.Inputs{
		CLI:         req.Overrides,
		Config:      cfg.Layer,
		Host:        host,
		ProjectRoot: root,
	})
	if err != nil {
		return err
	}
	a.logger.SetVerbose(p.Verbose)

	if cfg.Path != "" {
		a.logger.Debug("using config " + cfg.Path)
	}
	for _, note := range notes {
		a.logger.Warn(note)
	}

	if err := a.validator.Validate(p); err != nil {
		return err
	}

	// An info-only run describes the plan even when this host cannot execute it.
	generator := p.Generator
	pipe, err := a.orch.Prepare(p, host)
	switch {
	case err == nil:
		generator = pipe.Generator
	case p.InfoOnly:
		a.logger.Warn("plan cannot run on this host: " + err.Error())
		if generator == "" {
			generator = UnresolvedGenerator
		}
	default:
		return err
	}

	previous, err := a.store.Get(root, p.BuildDir)
	if err != nil {
		a.logger.Debug("ignoring previous build record: " + err.Error())
	}

	fingerprint := p.Fingerprint()
	if err := RenderPlan(a.out, p, PlanDetails{
		Generator:   generator,
		Fingerprint: fingerprint,
		Previous:    previous,
	}); err != nil {
		return zerr.Wrap(err, "failed to write plan summary")
	}

	if p.InfoOnly {
		return nil
	}

	report, err := a.orch.Execute(ctx, p, pipe)
	if err != nil {
		return err
	}

	if p.DryRun {
		return nil
	}

	record := domain.BuildRecord{
		BuildDir:    p.BuildDir,
		Fingerprint: fingerprint,
		Platform:    p.Platform,
		Toolchain:   p.Toolchain,
		Kind:        p.Kind,
		Generator:   report.Generator,
		Phases:      report.Phases,
		FinishedAt:  a.now().UTC(),
	}
	if err := a.store.Put(root, record); err != nil {
		a.logger.Warn("build succeeded but its record could not be saved: " + err.Error())
	}
	return nil
}
