package util

import (
	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorDim    = "\033[2m"
	ColorBold   = "\033[1m"

	ClearScreen    = "\033[2J"
	ClearLine      = "\033[2K"
	MoveCursorHome = "\033[H"
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
	AltScreenOn    = "\033[?1049h"
	AltScreenOff   = "\033[?1049l"
)

// GetDisplayWidth calculates the actual display width of a string,
// accounting for emojis and wide CJK runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateToWidth cuts a string to at most width display columns
func TruncateToWidth(text string, width int) string {
	return runewidth.Truncate(text, width, "")
}
