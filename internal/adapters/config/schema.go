package config

import (
	"github.com/hashicorp/hcl/v2"
	"go.trai.ch/forge/internal/core/domain"
)

// fileDTO is the on-disk shape of forge.yaml / forge.json. Pointer fields keep
// "absent" apart from false and 0.
type fileDTO struct {
	Platform  *string `yaml:"platform"`
	BuildType *string `yaml:"build_type"`
	Toolchain *string `yaml:"toolchain"`
	Generator *string `yaml:"generator"`
	BuildDir  *string `yaml:"build_dir"`
	Jobs      *int    `yaml:"jobs"`

	Clean         *bool `yaml:"clean"`
	ConfigureOnly *bool `yaml:"configure_only"`
	DryRun        *bool `yaml:"dry_run"`
	Production    *bool `yaml:"production"`
	Sanitizer     *bool `yaml:"sanitizer"`
	RunApp        *bool `yaml:"run_app"`
	Package       *bool `yaml:"package"`
	Info          *bool `yaml:"info"`
	Verbose       *bool `yaml:"verbose"`
	Commercial    *bool `yaml:"commercial"`

	QtRoot      *string `yaml:"qt_root"`
	QtToolsRoot *string `yaml:"qt_tools_root"`
	QtCMake     *string `yaml:"qt_cmake"`
	CMake       *string `yaml:"cmake"`
	CCompiler   *string `yaml:"c_compiler"`
	CXXCompiler *string `yaml:"cxx_compiler"`
	MakeProgram *string `yaml:"make_program"`
	QMake       *string `yaml:"qmake"`
	AppName     *string `yaml:"app_name"`

	// Older configs name the tool paths qt_cmake_binary and cmake_binary.
	QtCMakeBinary *string `yaml:"qt_cmake_binary"`
	CMakeBinary   *string `yaml:"cmake_binary"`

	EnvOverrides map[string]string `yaml:"env_overrides"`
	ExtraArgs    []string          `yaml:"extra_args"`
	CMakeArgs    []string          `yaml:"cmake_args"`
}

// hclDTO is the forge.hcl shape. Unknown attributes land in Remain.
type hclDTO struct {
	Platform  *string `hcl:"platform,optional"`
	BuildType *string `hcl:"build_type,optional"`
	Toolchain *string `hcl:"toolchain,optional"`
	Generator *string `hcl:"generator,optional"`
	BuildDir  *string `hcl:"build_dir,optional"`
	Jobs      *int    `hcl:"jobs,optional"`

	Clean         *bool `hcl:"clean,optional"`
	ConfigureOnly *bool `hcl:"configure_only,optional"`
	DryRun        *bool `hcl:"dry_run,optional"`
	Production    *bool `hcl:"production,optional"`
	Sanitizer     *bool `hcl:"sanitizer,optional"`
	RunApp        *bool `hcl:"run_app,optional"`
	Package       *bool `hcl:"package,optional"`
	Info          *bool `hcl:"info,optional"`
	Verbose       *bool `hcl:"verbose,optional"`
	Commercial    *bool `hcl:"commercial,optional"`

	QtRoot      *string `hcl:"qt_root,optional"`
	QtToolsRoot *string `hcl:"qt_tools_root,optional"`
	QtCMake     *string `hcl:"qt_cmake,optional"`
	CMake       *string `hcl:"cmake,optional"`
	CCompiler   *string `hcl:"c_compiler,optional"`
	CXXCompiler *string `hcl:"cxx_compiler,optional"`
	MakeProgram *string `hcl:"make_program,optional"`
	QMake       *string `hcl:"qmake,optional"`
	AppName     *string `hcl:"app_name,optional"`

	QtCMakeBinary *string `hcl:"qt_cmake_binary,optional"`
	CMakeBinary   *string `hcl:"cmake_binary,optional"`

	EnvOverrides map[string]string `hcl:"env_overrides,optional"`
	ExtraArgs    []string          `hcl:"extra_args,optional"`
	CMakeArgs    []string          `hcl:"cmake_args,optional"`

	Remain hcl.Body `hcl:",remain"`
}

// knownKeys lists every recognised top-level key; anything else is kept in ConfigFile.Extra.
var knownKeys = map[string]struct{}{
	"platform": {}, "build_type": {}, "toolchain": {}, "generator": {}, "build_dir": {}, "jobs": {},
	"clean": {}, "configure_only": {}, "dry_run": {}, "production": {}, "sanitizer": {},
	"run_app": {}, "package": {}, "info": {}, "verbose": {}, "commercial": {},
	"qt_root": {}, "qt_tools_root": {}, "qt_cmake": {}, "cmake": {}, "qt_cmake_binary": {}, "cmake_binary": {}, "c_compiler": {},
	"cxx_compiler": {}, "make_program": {}, "qmake": {}, "app_name": {},
	"env_overrides": {}, "extra_args": {}, "cmake_args": {},
}

func (d *fileDTO) toLayer() domain.Layer {
	layer := domain.Layer{
		Platform:      d.Platform,
		BuildType:     d.BuildType,
		Toolchain:     d.Toolchain,
		Generator:     d.Generator,
		BuildDir:      d.BuildDir,
		Jobs:          d.Jobs,
		Clean:         d.Clean,
		ConfigureOnly: d.ConfigureOnly,
		DryRun:        d.DryRun,
		Production:    d.Production,
		Sanitizer:     d.Sanitizer,
		RunApp:        d.RunApp,
		Package:       d.Package,
		Info:          d.Info,
		Verbose:       d.Verbose,
		QtRoot:        d.QtRoot,
		QtToolsRoot:   d.QtToolsRoot,
		QtCMake:       orAlias(d.QtCMake, d.QtCMakeBinary),
		CMake:         orAlias(d.CMake, d.CMakeBinary),
		CCompiler:     d.CCompiler,
		CXXCompiler:   d.CXXCompiler,
		MakeProgram:   d.MakeProgram,
		QMake:         d.QMake,
		AppName:       d.AppName,
		Env:           d.EnvOverrides,
	}

	if d.Commercial != nil {
		gplOnly := !*d.Commercial
		layer.GPLOnly = &gplOnly
	}

	if n := len(d.ExtraArgs) + len(d.CMakeArgs); n > 0 {
		layer.ExtraArgs = make([]string, 0, n)
		layer.ExtraArgs = append(layer.ExtraArgs, d.ExtraArgs...)
		layer.ExtraArgs = append(layer.ExtraArgs, d.CMakeArgs...)
	}

	return layer
}

func (d *hclDTO) toFileDTO() *fileDTO {
	return &fileDTO{
		Platform:      d.Platform,
		BuildType:     d.BuildType,
		Toolchain:     d.Toolchain,
		Generator:     d.Generator,
		BuildDir:      d.BuildDir,
		Jobs:          d.Jobs,
		Clean:         d.Clean,
		ConfigureOnly: d.ConfigureOnly,
		DryRun:        d.DryRun,
		Production:    d.Production,
		Sanitizer:     d.Sanitizer,
		RunApp:        d.RunApp,
		Package:       d.Package,
		Info:          d.Info,
		Verbose:       d.Verbose,
		Commercial:    d.Commercial,
		QtRoot:        d.QtRoot,
		QtToolsRoot:   d.QtToolsRoot,
		QtCMake:       d.QtCMake,
		CMake:         d.CMake,
		QtCMakeBinary: d.QtCMakeBinary,
		CMakeBinary:   d.CMakeBinary,
		CCompiler:     d.CCompiler,
		CXXCompiler:   d.CXXCompiler,
		MakeProgram:   d.MakeProgram,
		QMake:         d.QMake,
		AppName:       d.AppName,
		EnvOverrides:  d.EnvOverrides,
		ExtraArgs:     d.ExtraArgs,
		CMakeArgs:     d.CMakeArgs,
	}
}

// orAlias returns value, or alias when value is absent.
func orAlias(value, alias *string) *string {
	if value != nil {
		return value
	}
	return alias
}
