package client

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	successMark = color.New(color.FgGreen).Sprint("✓")
	failMark    = color.New(color.FgRed).Sprint("✗")
	hintMark    = color.New(color.FgCyan).Sprint("→")
	highlight   = color.New(color.FgYellow)
)

func (a *App) success(format string, args ...any) {
	fmt.Fprintf(a.out, "%s %s\n", successMark, fmt.Sprintf(format, args...))
}

func (a *App) hint(format string, args ...any) {
	fmt.Fprintf(a.out, "%s %s\n", hintMark, fmt.Sprintf(format, args...))
}

// ReportError prints err the way every command reports failures.
func ReportError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", failMark, msg)
}

// startSpinner shows message on errOut until the returned stop is called.
// Nothing is drawn when errOut is not a terminal.
func (a *App) startSpinner(message string) func() {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.errOut))
	s.Suffix = " " + message
	if err := s.Color("cyan"); err != nil {
		a.logger.Warn().Err(err).Msg("failed to set spinner color")
	}
	s.Start()

	return s.Stop
}
