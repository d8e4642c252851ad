package domain

import (
	"maps"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ToolPaths holds explicitly configured executables. Empty fields are discovered or unused.
type ToolPaths struct {
	QtCMake     string
	CMake       string
	CCompiler   string
	CXXCompiler string
	MakeProgram string
	QMake       string
}

// BuildPlan is the resolved configuration of one invocation.
// It is built once, validated once and only read afterwards.
type BuildPlan struct {
	Platform    Platform
	Kind        BuildKind
	Toolchain   Toolchain
	Generator   string
	ProjectRoot string
	BuildDir    string
	Jobs        int

	Clean         bool
	DryRun        bool
	ConfigureOnly bool
	Production    bool
	Sanitizer     bool
	RunAfterBuild bool
	CreatePackage bool
	InfoOnly      bool
	Verbose       bool
	GPLOnly       bool

	Tools       ToolPaths
	QtRoot      string
	QtToolsRoot string
	AppName     string

	ExtraArgs    []string
	EnvOverrides map[string]string
}

// Clone returns a deep copy of the plan.
func (p BuildPlan) Clone() BuildPlan {
	c := p
	c.ExtraArgs = slices.Clone(p.ExtraArgs)
	c.EnvOverrides = maps.Clone(p.EnvOverrides)
	return c
}

// UserEnv returns the user override layer of the plan.
func (p BuildPlan) UserEnv() EnvLayer {
	return EnvLayer{Set: maps.Clone(p.EnvOverrides)}
}

// Fingerprint hashes the fields that influence the generated build tree.
// Action flags such as clean, dry-run or run-after-build are excluded.
func (p BuildPlan) Fingerprint() string {
	d := xxhash.New()
	write := func(parts ...string) {
		for _, s := range parts {
			_, _ = d.WriteString(s)
			_, _ = d.Write([]byte{0})
		}
	}

	write(
		string(p.Platform),
		string(p.Kind),
		string(p.Toolchain),
		p.Generator,
		p.ProjectRoot,
		p.BuildDir,
		strconv.FormatBool(p.Production),
		strconv.FormatBool(p.Sanitizer),
		strconv.FormatBool(p.GPLOnly),
		p.QtRoot,
		p.QtToolsRoot,
		p.Tools.QtCMake,
		p.Tools.CMake,
		p.Tools.CCompiler,
		p.Tools.CXXCompiler,
		p.Tools.MakeProgram,
		p.Tools.QMake,
	)
	write(p.ExtraArgs...)
	for _, k := range slices.Sorted(maps.Keys(p.EnvOverrides)) {
		write(k, p.EnvOverrides[k])
	}

	return strconv.FormatUint(d.Sum64(), 16)
}
