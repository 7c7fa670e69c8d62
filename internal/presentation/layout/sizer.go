package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Sizer measures the terminal and pads strings display-width aware.
type Sizer struct{}

// displayWidth calculates the actual display width of a string containing emojis and Unicode characters
func (s Sizer) displayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads a string to a specific display width, handling emojis correctly
func (s Sizer) PadString(text string, width int, leftAlign bool) string {
	actualWidth := s.displayWidth(text)
	if actualWidth >= width {
		return text
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return text + padding
	}
	return padding + text
}

// TerminalSize returns the terminal dimensions in columns and rows, with
// a fallback when stdout is not a terminal.
func (s Sizer) TerminalSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols < 20 || rows < 5 {
		return 80, 24
	}
	return cols, rows
}

// WrapWidth returns the caption wrap width for a terminal of the given
// column count, leaving a margin and capping very wide terminals so lines
// stay readable.
func (s Sizer) WrapWidth(cols int) int {
	width := cols - 8
	if width > 100 {
		width = 100
	}
	if width < 10 {
		width = 10
	}
	return width
}
