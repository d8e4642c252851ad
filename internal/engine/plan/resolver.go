// Package plan turns option layers into a validated domain.BuildPlan.
package plan

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
)

// Inputs are the sources a BuildPlan is resolved from.
type Inputs struct {
	// CLI holds only the flags the user explicitly passed.
	CLI         domain.Layer
	Config      domain.Layer
	Host        domain.Host
	ProjectRoot string
}

// Resolve merges the layers into a BuildPlan. Precedence per field is
// command line, then config file, then computed default.
//
// Notes are non-fatal observations the caller should surface as warnings.
// Parse failures of individual fields are collected into one *domain.PlanError.
//
//nolint:cyclop,funlen // one assignment per plan field
func Resolve(in Inputs) (domain.BuildPlan, []string, error) {
	var (
		violations []error
		notes      []string
	)
	cli, cfg, host := in.CLI, in.Config, in.Host

	p := domain.BuildPlan{ProjectRoot: in.ProjectRoot}

	if name, ok := first(cli.Platform, cfg.Platform); ok {
		platform, err := domain.ParsePlatform(name)
		violations = append(violations, err)
		p.Platform = platform
	} else if host.Platform != "" {
		p.Platform = host.Platform
	} else {
		violations = append(violations, domain.Violation(domain.ErrUnsupportedPlatform, host.GOOS))
	}

	p.Kind = domain.BuildRelease
	if name, ok := first(cli.BuildType, cfg.BuildType); ok {
		kind, err := domain.ParseBuildKind(name)
		violations = append(violations, err)
		p.Kind = kind
	}

	if name, ok := first(cli.Toolchain, cfg.Toolchain); ok {
		tc, err := domain.ParseToolchain(name)
		violations = append(violations, err)
		p.Toolchain = tc
	}

	p.Generator = strings.TrimSpace(pick(cli.Generator, cfg.Generator, ""))
	p.Jobs = pick(cli.Jobs, cfg.Jobs, max(host.NumCPU, 1))

	p.Clean = pick(cli.Clean, cfg.Clean, false)
	p.DryRun = pick(cli.DryRun, cfg.DryRun, false)
	p.ConfigureOnly = pick(cli.ConfigureOnly, cfg.ConfigureOnly, false)
	p.Production = pick(cli.Production, cfg.Production, false)
	p.Sanitizer = pick(cli.Sanitizer, cfg.Sanitizer, false)
	p.RunAfterBuild = pick(cli.RunApp, cfg.RunApp, false)
	p.CreatePackage = pick(cli.Package, cfg.Package, false)
	p.InfoOnly = pick(cli.Info, cfg.Info, false)
	p.Verbose = pick(cli.Verbose, cfg.Verbose, false)
	p.GPLOnly = pick(cli.GPLOnly, cfg.GPLOnly, true)

	path := func(c, f *string) string {
		return absPath(ExpandHome(pick(c, f, ""), host.HomeDir), host.WorkDir)
	}
	p.QtRoot = path(cli.QtRoot, cfg.QtRoot)
	p.QtToolsRoot = path(cli.QtToolsRoot, cfg.QtToolsRoot)
	p.Tools = domain.ToolPaths{
		QtCMake:     path(cli.QtCMake, cfg.QtCMake),
		CMake:       path(cli.CMake, cfg.CMake),
		CCompiler:   path(cli.CCompiler, cfg.CCompiler),
		CXXCompiler: path(cli.CXXCompiler, cfg.CXXCompiler),
		MakeProgram: path(cli.MakeProgram, cfg.MakeProgram),
		QMake:       path(cli.QMake, cfg.QMake),
	}

	p.AppName = pick(cli.AppName, cfg.AppName, "")
	if p.AppName == "" {
		p.AppName = domain.DefaultAppName
	}

	dir, note := buildDir(pick(cli.BuildDir, cfg.BuildDir, ""), p, host.HomeDir)
	p.BuildDir = dir
	if note != "" {
		notes = append(notes, note)
	}

	p.ExtraArgs = make([]string, 0, len(cfg.ExtraArgs)+len(cli.ExtraArgs))
	p.ExtraArgs = append(p.ExtraArgs, cfg.ExtraArgs...)
	p.ExtraArgs = append(p.ExtraArgs, cli.ExtraArgs...)

	p.EnvOverrides = mergeEnv(cli.Env, cfg.Env)

	if err := domain.NewPlanError(violations...); err != nil {
		return domain.BuildPlan{}, notes, err
	}
	return p, notes, nil
}

// buildDir returns the build directory of the plan. An absolute value is used
// verbatim; anything else yields root/build/<platform>/[<toolchain>/]<kind>.
func buildDir(value string, p domain.BuildPlan, home string) (string, string) {
	value = ExpandHome(strings.TrimSpace(value), home)
	if value != "" && filepath.IsAbs(value) {
		return filepath.Clean(value), ""
	}

	dir := domain.SynthesizeBuildDir(p.ProjectRoot, p.Platform, p.Toolchain, p.Kind)
	if value != "" && filepath.Clean(value) != domain.DefaultBuildDirName {
		return dir, fmt.Sprintf("relative build directory %q ignored, using %s", value, dir)
	}
	return dir, ""
}

// mergeEnv copies the command line overrides and fills in config keys that are not set yet.
func mergeEnv(cli, cfg map[string]string) map[string]string {
	out := make(map[string]string, len(cli)+len(cfg))
	maps.Copy(out, cli)
	for k, v := range cfg {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func pick[T any](cli, cfg *T, def T) T {
	if cli != nil {
		return *cli
	}
	if cfg != nil {
		return *cfg
	}
	return def
}

func first(cli, cfg *string) (string, bool) {
	v := pick(cli, cfg, "")
	return v, cli != nil || cfg != nil
}

// ExpandHome replaces a leading "~" in path with home.
func ExpandHome(path, home string) string {
	if home == "" || path == "" || path[0] != '~' {
		return path
	}
	if path == "~" {
		return home
	}
	if path[1] == '/' || path[1] == '\\' {
		return filepath.Join(home, path[2:])
	}
	return path
}

func absPath(path, wd string) string {
	if path == "" || filepath.IsAbs(path) || wd == "" {
		return path
	}
	return filepath.Join(wd, path)
}
