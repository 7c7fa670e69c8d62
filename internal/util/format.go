package util

import (
	"fmt"
	"time"
)

// FormatClock renders a millisecond position as m:ss or h:mm:ss.
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatOffset renders a pixel offset with one decimal place.
func FormatOffset(px float64) string {
	return fmt.Sprintf("%.1fpx", px)
}

// FormatGap renders a frame gap in milliseconds.
func FormatGap(d time.Duration) string {
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
