package app

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/ui/output"
	"go.trai.ch/forge/internal/ui/style"
)

const labelWidth = 14

// UnresolvedGenerator is shown when no generator could be picked for the host.
const UnresolvedGenerator = "unresolved"

// PlanDetails carries what the summary shows beyond the plan itself.
type PlanDetails struct {
	Generator   string
	Fingerprint string
	// Previous is the last successful build of the same directory, if any.
	Previous *domain.BuildRecord
}

// RenderPlan writes a summary of the resolved plan to w.
func RenderPlan(w io.Writer, p domain.BuildPlan, d PlanDetails) error { //nolint:gocritic // hugeParam
	out := output.New(w)
	label := func(s string) string {
		return style.Paint(out, style.Muted, s)
	}

	var b strings.Builder
	b.WriteString(style.Paint(out, style.Accent, "forge build plan") + "\n")
	row := func(name, value string) {
		if value == "" {
			value = "-"
		}
		pad := strings.Repeat(" ", max(labelWidth-len(name), 0))
		fmt.Fprintf(&b, "  %s%s %s\n", label(name), pad, value)
	}

	row("platform", string(p.Platform))
	row("toolchain", p.Toolchain.String())
	row("generator", d.Generator)
	row("build type", string(p.Kind))
	row("source", p.ProjectRoot)
	row("build dir", p.BuildDir)
	row("jobs", strconv.Itoa(p.Jobs))
	row("licence", licence(p.GPLOnly))
	row("flags", flags(p))
	row("app name", p.AppName)
	row("qt root", p.QtRoot)
	row("qt tools root", p.QtToolsRoot)

	for _, t := range []struct{ name, path string }{
		{"qt-cmake", p.Tools.QtCMake},
		{"cmake", p.Tools.CMake},
		{"c compiler", p.Tools.CCompiler},
		{"c++ compiler", p.Tools.CXXCompiler},
		{"make program", p.Tools.MakeProgram},
		{"qmake", p.Tools.QMake},
	} {
		if t.path != "" {
			row(t.name, t.path)
		}
	}

	row("extra args", domain.Command{Args: p.ExtraArgs}.String())
	row("env overrides", strings.Join(slices.Sorted(maps.Keys(p.EnvOverrides)), ", "))
	row("fingerprint", d.Fingerprint)
	row("last build", lastBuild(d))

	_, err := io.WriteString(w, b.String())
	return err
}

func licence(gplOnly bool) string {
	if gplOnly {
		return "GPLv3"
	}
	return "commercial"
}

func flags(p domain.BuildPlan) string { //nolint:gocritic // hugeParam
	var set []string
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"clean", p.Clean},
		{"dry-run", p.DryRun},
		{"configure-only", p.ConfigureOnly},
		{"production", p.Production},
		{"sanitizer", p.Sanitizer},
		{"package", p.CreatePackage},
		{"run", p.RunAfterBuild},
		{"verbose", p.Verbose},
	} {
		if f.on {
			set = append(set, f.name)
		}
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, ", ")
}

func lastBuild(d PlanDetails) string {
	if d.Previous == nil {
		return "none"
	}
	at := d.Previous.FinishedAt.UTC().Format(time.RFC3339)
	if d.Previous.Fingerprint == d.Fingerprint {
		return "up to date (" + at + ")"
	}
	return "outdated (" + at + ")"
}
