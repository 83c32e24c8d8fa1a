// Package progress provides a terminal spinner for long-running download
// steps, degrading to silence when output is not an interactive terminal.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Spinner wraps a terminal spinner that is a no-op on non-TTY output.
type Spinner struct {
	out     io.Writer
	enabled bool
}

// New creates a Spinner writing to out. The spinner is enabled only when
// out is an interactive terminal and NO_COLOR is unset.
func New(out io.Writer) *Spinner {
	return &Spinner{out: out, enabled: isInteractive(out)}
}

// Start begins spinning with the given message and returns a stop func.
// Safe to call on a disabled spinner; the stop func is then a no-op.
func (s *Spinner) Start(message string) func() {
	if !s.enabled {
		return func() {}
	}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(s.out))
	sp.Suffix = " " + message
	sp.Start()
	return sp.Stop
}

// isInteractive reports whether out is a terminal suitable for animation.
func isInteractive(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
