package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode of the CLI.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// DetectMode determines whether prompts may be shown.
//
// Returns ModeNonInteractive if:
//   - DLMETA_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - in or out is not a terminal
func DetectMode(in io.Reader, out io.Writer) Mode {
	if os.Getenv("DLMETA_NON_INTERACTIVE") == "1" || os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if !IsTerminal(in) || !IsTerminal(out) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// ColorEnabled reports whether ANSI styling should be written to w.
// NO_COLOR, CI and TERM=dumb disable colour; so does a non-terminal w.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(w)
}
