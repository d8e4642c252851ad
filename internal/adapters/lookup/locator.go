// Package lookup finds executables on the host search path.
package lookup

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Locator implements ports.ToolLocator over a fixed PATH value.
type Locator struct {
	path    string
	goos    string
	pathExt []string
}

// New creates a Locator for the PATH of the running process.
func New() *Locator {
	return NewWithPath(os.Getenv("PATH"), runtime.GOOS, os.Getenv("PATHEXT"))
}

// NewWithPath creates a Locator searching path. pathExt is only consulted on windows.
func NewWithPath(path, goos, pathExt string) *Locator {
	l := &Locator{path: path, goos: goos}
	if goos == "windows" {
		if pathExt == "" {
			pathExt = ".COM;.EXE;.BAT;.CMD"
		}
		for _, ext := range strings.Split(pathExt, ";") {
			if ext != "" {
				l.pathExt = append(l.pathExt, strings.ToLower(ext))
			}
		}
	}
	return l
}

// LookPath searches for an executable in the directories named by PATH.
func (l *Locator) LookPath(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if strings.ContainsAny(name, `/\`) {
		return l.probe(name)
	}

	for _, dir := range filepath.SplitList(l.path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		if p, ok := l.probe(filepath.Join(dir, name)); ok {
			return p, true
		}
	}
	return "", false
}

func (l *Locator) probe(file string) (string, bool) {
	for _, candidate := range l.candidates(file) {
		if l.isExecutable(candidate) {
			if abs, err := filepath.Abs(candidate); err == nil {
				return abs, true
			}
			return candidate, true
		}
	}
	return "", false
}

func (l *Locator) candidates(file string) []string {
	if l.goos != "windows" || filepath.Ext(file) != "" {
		return []string{file}
	}
	out := make([]string, 0, len(l.pathExt))
	for _, ext := range l.pathExt {
		out = append(out, file+ext)
	}
	return out
}

func (l *Locator) isExecutable(file string) bool {
	d, err := os.Stat(file)
	if err != nil || d.IsDir() {
		return false
	}
	if l.goos == "windows" {
		return true
	}
	return d.Mode()&0o111 != 0
}
