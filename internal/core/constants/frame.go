package constants

import "time"

const (
	// Frame timing
	DefaultTargetFPS     = 60
	DefaultFrameInterval = time.Second / DefaultTargetFPS

	// A frame counts as janked when the gap since the previous frame
	// exceeds JankGapFactor times the target interval.
	JankGapFactor = 2

	// Rolling window for the FPS estimate
	FPSWindow = time.Second

	// Default pixel height of one caption row
	DefaultLineHeightPx = 24.0

	// Diagnostics are sampled at a lower rate than the frame path
	DiagnosticsInterval = 200 * time.Millisecond

	// Stall detection: warn when the resolved interval is still 0 after
	// playback has advanced this far past the first sample
	StallWarnAfterMs = int64(5000)

	// Keyboard seek step
	SeekStepMs = int64(5000)
)
