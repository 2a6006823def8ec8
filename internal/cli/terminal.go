// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for textkit output.
//
// Interactive terminals get colors and the real width; piped output gets
// neither. NO_COLOR and FORCE_COLOR override detection.

package cli

import (
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	// DefaultTerminalWidth is used when w is not a terminal.
	DefaultTerminalWidth = 80

	// MinTerminalWidth keeps formula frames readable in narrow panes.
	MinTerminalWidth = 40
)

// isTerminal reports whether w is an *os.File attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of w when it is a terminal, clamped to
// MinTerminalWidth. Anything else gets DefaultTerminalWidth.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultTerminalWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	switch {
	case err != nil, cols <= 0:
		return DefaultTerminalWidth
	case cols < MinTerminalWidth:
		return MinTerminalWidth
	default:
		return cols
	}
}

// colorDecision is computed once per process.
var colorDecision = sync.OnceValue(func() bool {
	// https://no-color.org/: any non-empty value wins.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return isTerminal(os.Stdout)
})

// ColorsEnabled reports whether styled output should carry ANSI colors.
func ColorsEnabled() bool {
	return colorDecision()
}

// GetColorProfile returns termenv.Ascii when colors are off and the
// detected profile otherwise.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
