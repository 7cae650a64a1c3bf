package clilog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ColorMode controls whether output carries ANSI color sequences.
type ColorMode int

const (
	// ColorAuto enables color when the target is a terminal and the
	// NO_COLOR environment variable is unset.
	ColorAuto ColorMode = iota
	// ColorOn forces color even when piped.
	ColorOn
	// ColorOff disables color.
	ColorOff
)

// ANSI sequences used by the level prefixes.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// Logger writes leveled console output. Safe for concurrent use; each
// line is written with a single Fprintf under the lock.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	err     io.Writer
	color   bool
	verbose bool
}

// Option configures a Logger.
type Option func(*settings)

type settings struct {
	out     io.Writer
	err     io.Writer
	mode    ColorMode
	verbose bool
}

// WithOutput redirects normal output. Color auto-detection only fires
// for *os.File targets; other writers default to plain text.
func WithOutput(w io.Writer) Option {
	return func(s *settings) { s.out = w }
}

// WithErrOutput redirects Warn and Error output.
func WithErrOutput(w io.Writer) Option {
	return func(s *settings) { s.err = w }
}

// WithColor sets the color mode.
func WithColor(mode ColorMode) Option {
	return func(s *settings) { s.mode = mode }
}

// WithVerbose enables Verbose lines.
func WithVerbose(enabled bool) Option {
	return func(s *settings) { s.verbose = enabled }
}

// New returns a Logger writing to stdout/stderr with color
// auto-detection.
func New(opts ...Option) *Logger {
	s := &settings{out: os.Stdout, err: os.Stderr, mode: ColorAuto}
	for _, opt := range opts {
		opt(s)
	}

	color := false
	switch s.mode {
	case ColorOn:
		color = true
	case ColorAuto:
		color = isTerminal(s.out)
	}
	if os.Getenv("NO_COLOR") != "" {
		color = false
	}

	l := &Logger{
		out:     s.out,
		err:     s.err,
		color:   color,
		verbose: s.verbose,
	}
	if color {
		l.out = colorWriter(s.out)
		l.err = colorWriter(s.err)
	}
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// colorWriter wraps file targets through go-colorable so ANSI
// sequences render on Windows consoles; other writers (forced color in
// tests) pass through unchanged.
func colorWriter(w io.Writer) io.Writer {
	if f, ok := w.(*os.File); ok {
		return colorable.NewColorable(f)
	}
	return w
}

// Title prints a bold heading followed by its underline.
func (l *Logger) Title(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.color {
		fmt.Fprintf(l.out, "%s%s%s\n", ansiBold, text, ansiReset)
	} else {
		fmt.Fprintf(l.out, "%s\n%s\n", text, strings.Repeat("-", len(text)))
	}
}

// Step prints a progress line for a stage of work.
func (l *Logger) Step(format string, args ...any) {
	l.line(l.out, "-->", ansiCyan, format, args...)
}

// Info prints an informational line.
func (l *Logger) Info(format string, args ...any) {
	l.line(l.out, "   ", "", format, args...)
}

// Success prints a completion line.
func (l *Logger) Success(format string, args ...any) {
	l.line(l.out, " ok", ansiGreen, format, args...)
}

// Warn prints a warning line to the error target.
func (l *Logger) Warn(format string, args ...any) {
	l.line(l.err, "warn", ansiYellow, format, args...)
}

// Error prints an error line to the error target.
func (l *Logger) Error(format string, args ...any) {
	l.line(l.err, "error", ansiRed, format, args...)
}

// Verbose prints a dimmed detail line, dropped unless the logger was
// built with WithVerbose(true).
func (l *Logger) Verbose(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.line(l.out, "   ", ansiDim, format, args...)
}

// IsVerbose reports whether Verbose lines are emitted, so callers can
// skip building expensive detail output.
func (l *Logger) IsVerbose() bool { return l.verbose }

func (l *Logger) line(w io.Writer, prefix, color, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.color && color != "" {
		fmt.Fprintf(w, "%s%s%s %s\n", color, prefix, ansiReset, text)
	} else {
		fmt.Fprintf(w, "%s %s\n", prefix, text)
	}
}
