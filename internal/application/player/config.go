package player

import (
	"fmt"

	"captionscroll/internal/core/constants"
)

// Config contains configuration for the play command
type Config struct {
	// Content
	TranscriptPath string
	Title          string

	// Playback settings
	Rate     float64
	Autoplay bool

	// Frame and layout settings
	TargetFPS       int
	LineHeightPx    float64
	TopPaddingPx    float64 // negative means auto (center first row)
	BottomPaddingPx float64 // negative means auto (center last row)

	// Display settings
	ShowColors bool

	// Observability
	MetricsListen string // empty disables the debug server

	// Live reload
	Watch bool
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	if c.TranscriptPath == "" {
		return fmt.Errorf("transcript path is required")
	}
	if c.Title == "" {
		c.Title = c.TranscriptPath
	}
	if c.Rate == 0 {
		c.Rate = 1.0
	}
	if c.Rate < 0 {
		return fmt.Errorf("playback rate must be positive, got %v", c.Rate)
	}
	if c.TargetFPS == 0 {
		c.TargetFPS = constants.DefaultTargetFPS
	}
	if c.TargetFPS < 1 || c.TargetFPS > 240 {
		return fmt.Errorf("target fps must be in [1,240], got %d", c.TargetFPS)
	}
	if c.LineHeightPx == 0 {
		c.LineHeightPx = constants.DefaultLineHeightPx
	}
	if c.LineHeightPx < 0 {
		return fmt.Errorf("line height must be positive, got %v", c.LineHeightPx)
	}
	return nil
}
