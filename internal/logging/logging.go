// Package logging implements the scope.Logger the phase driver and
// pipeline pass diagnostics write through: leveled, colorized terminal
// output that degrades to plain text when stderr isn't a TTY. Grounded on
// the teacher's internal/pipeline.Spinner (go-isatty TTY detection) and
// internal/output/terminal.go (fatih/color severity coloring).
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger writes leveled, optionally colorized diagnostics to an
// io.Writer, satisfying scope.Logger's single Printf(format, args...)
// method for plain messages, plus Warnf/Errorf for severity-tagged ones.
type Logger struct {
	mu     sync.Mutex
	w      io.Writer
	color  bool
	warn   *color.Color
	errc   *color.Color
	verbose bool
}

// New builds a Logger writing to w. Coloring is enabled only when w is an
// *os.File (such as os.Stderr or os.Stdout) that is a TTY.
func New(w io.Writer, verbose bool) *Logger {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Logger{
		w:       w,
		color:   useColor,
		warn:    color.New(color.FgYellow),
		errc:    color.New(color.FgRed),
		verbose: verbose,
	}
}

// Printf implements scope.Logger: an unadorned diagnostic line.
func (l *Logger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format+"\n", args...)
}

// Warnf logs a non-fatal problem (ResolveWarning, TypeMappingProblem,
// InferenceMiss), prefixed and colored yellow when color is enabled.
func (l *Logger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.color {
		l.warn.Fprintf(l.w, "warning: %s\n", msg)
		return
	}
	fmt.Fprintf(l.w, "warning: %s\n", msg)
}

// Errorf logs a fatal-class problem (ParseError, PedanticError),
// colored red when color is enabled.
func (l *Logger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.color {
		l.errc.Fprintf(l.w, "error: %s\n", msg)
		return
	}
	fmt.Fprintf(l.w, "error: %s\n", msg)
}

// Debugf logs only when the logger was built with verbose=true.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.Printf(format, args...)
}
