package domain

import (
	"maps"
	"slices"
	"strings"
)

// Environment is an immutable set of process environment variables.
// On windows variable names are case-insensitive, which FoldCase models.
type Environment struct {
	vars     map[string]envVar
	foldCase bool
}

type envVar struct {
	name  string
	value string
}

// NewEnvironment builds an Environment from KEY=VALUE entries such as os.Environ.
// Entries without '=' are ignored; later entries win.
func NewEnvironment(entries []string, foldCase bool) Environment {
	e := Environment{vars: make(map[string]envVar, len(entries)), foldCase: foldCase}
	for _, entry := range entries {
		k, v, ok := strings.Cut(entry, "=")
		if !ok || k == "" {
			continue
		}
		e.set(k, v)
	}
	return e
}

// EnvironmentFromMap builds an Environment from a map.
func EnvironmentFromMap(m map[string]string, foldCase bool) Environment {
	e := Environment{vars: make(map[string]envVar, len(m)), foldCase: foldCase}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		e.set(k, m[k])
	}
	return e
}

func (e Environment) key(name string) string {
	if e.foldCase {
		return strings.ToUpper(name)
	}
	return name
}

func (e *Environment) set(name, value string) {
	k := e.key(name)
	if existing, ok := e.vars[k]; ok {
		// Keep the spelling already in use, e.g. "Path" on windows.
		name = existing.name
	}
	e.vars[k] = envVar{name: name, value: value}
}

// FoldCase reports whether names are compared case-insensitively.
func (e Environment) FoldCase() bool {
	return e.foldCase
}

// Lookup returns the value of the variable and whether it is set.
func (e Environment) Lookup(name string) (string, bool) {
	v, ok := e.vars[e.key(name)]
	return v.value, ok
}

// Get returns the value of the variable or an empty string.
func (e Environment) Get(name string) string {
	v, _ := e.Lookup(name)
	return v
}

// Len returns the number of variables.
func (e Environment) Len() int {
	return len(e.vars)
}

// Entries returns the variables as sorted KEY=VALUE strings, ready for exec.Cmd.Env.
func (e Environment) Entries() []string {
	out := make([]string, 0, len(e.vars))
	for _, k := range slices.Sorted(maps.Keys(e.vars)) {
		v := e.vars[k]
		out = append(out, v.name+"="+v.value)
	}
	return out
}

// Apply returns a new Environment with the layers applied in order.
// Within a layer, Unset is applied before Set.
func (e Environment) Apply(layers ...EnvLayer) Environment {
	out := Environment{vars: maps.Clone(e.vars), foldCase: e.foldCase}
	if out.vars == nil {
		out.vars = make(map[string]envVar)
	}
	for _, layer := range layers {
		for _, name := range layer.Unset {
			delete(out.vars, out.key(name))
		}
		for _, name := range slices.Sorted(maps.Keys(layer.Set)) {
			out.set(name, layer.Set[name])
		}
	}
	return out
}

// EnvLayer is a set of changes on top of an inherited environment.
type EnvLayer struct {
	Set   map[string]string
	Unset []string
}

// IsEmpty reports whether the layer changes nothing.
func (l EnvLayer) IsEmpty() bool {
	return len(l.Set) == 0 && len(l.Unset) == 0
}

// ComposeEnv merges base, toolchain and user layers in that fixed order.
// A later layer shadows an earlier one key by key, so a user override can
// reinstate a variable the toolchain layer removed.
func ComposeEnv(base Environment, toolchain, user EnvLayer) Environment {
	return base.Apply(toolchain, user)
}
