package report

import (
	"os"

	"golang.org/x/term"
)

// Interactive reports whether f is a terminal outside of CI, which is when a
// live progress bar is worth drawing.
func Interactive(f *os.File) bool {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return false
	}

	ci := os.Getenv("CI")
	return ci != "true" && ci != "1"
}
