// Package output builds the termenv outputs used for logs and the plan summary.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile picks the profile for w:
//   - Ascii when NO_COLOR is set or w is a file that is not a terminal,
//   - ANSI under CI, where log viewers rarely render true colour,
//   - the terminal's own capabilities otherwise.
func ColorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if f, ok := w.(*os.File); ok && !isTerminal(f) {
		return termenv.Ascii
	}
	if ci := os.Getenv("CI"); ci == "true" || ci == "1" {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New returns an output writing to w, or to stderr when w is nil.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(ColorProfile(w)), termenv.WithTTY(true))
}
