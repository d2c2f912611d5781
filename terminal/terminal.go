// Package terminal has the ANSI building blocks the client draws with:
// cursor control, raw-mode line endings and the truecolor cell palette.
package terminal

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	HideCursor = "\033[2J\033[?25l" // also clears the screen
	ShowCursor = "\033[?25h"
	Clear      = "\033[2J"
	Home       = "\033[H" // Reset cursor position to 0,0
	Reset      = "\033[0m"
	Bold       = "\033[1m"
	EraseLine  = "\033[K" // from the cursor to the end of the line
)

// Goto moves the cursor to column x, row y, both 1-based.
func Goto(x, y int) string {
	return fmt.Sprintf("\033[%d;%dH", y, x)
}

// Raw converts line feeds into carriage return plus line feed. With the
// console in raw mode a bare new line does not go back to the first column.
func Raw(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec
}

// Fits reports whether a frame of w columns and h rows fits the terminal.
// When the size can't be read it assumes it does.
func Fits(w, h int) bool {
	tw, th, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec
	if err != nil {
		return true
	}
	return w <= tw && h <= th
}
