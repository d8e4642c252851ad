package domain

import (
	"strconv"
	"strings"
)

// Phase names one step of the build pipeline.
type Phase string

// Pipeline phases in execution order.
const (
	PhaseClean     Phase = "clean"
	PhaseConfigure Phase = "configure"
	PhaseBuild     Phase = "build"
	PhasePackage   Phase = "package"
	PhaseRun       Phase = "run"
)

// Command is one external process invocation.
type Command struct {
	Phase  Phase
	Args   []string
	Dir    string
	Env    Environment
	DryRun bool
}

// String renders the argument vector as a copy-pasteable command line.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\n\"'\\$`;&|<>*?()") {
		return strconv.Quote(s)
	}
	return s
}
