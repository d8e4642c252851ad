// Package detector provides terminal and CI detection for output decisions.
package detector

import (
	"os"

	"golang.org/x/term"
)

// IsCI reports whether the CI environment variable marks a CI run.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// IsInteractive reports whether stdout is a terminal outside CI.
// Child processes are attached to a pseudo-terminal only in this case so
// compilers keep their coloured diagnostics.
func IsInteractive() bool {
	return resolve(term.IsTerminal(int(os.Stdout.Fd())), IsCI()) //nolint:gosec // Fd fits in int
}

func resolve(isTTY, isCI bool) bool {
	return isTTY && !isCI
}
