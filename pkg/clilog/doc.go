// Package clilog provides leveled, colored console output for the
// platform's command-line tools.
//
// Unlike the daemon's structured slog output, CLI output is read by a
// human at a terminal: short prefixed lines, color when the terminal
// supports it, plain text when piped. The logger detects terminals via
// isatty and writes ANSI sequences through go-colorable so Windows
// consoles render them too.
//
//	log := clilog.New()
//	log.Title("plaza asset manifest")
//	log.Step("hashing %d files", n)
//	log.Success("manifest written to %s", path)
//	log.Error("cannot read %s: %v", dir, err)
//
// # Color control
//
// Color defaults to auto-detection and is forced on or off with
// WithColor. The NO_COLOR environment variable disables color
// regardless of the mode, per the no-color.org convention.
//
// # Verbose output
//
// Verbose lines are dropped unless the logger was built with
// WithVerbose(true), which CLIs wire to a --verbose flag.
package clilog
