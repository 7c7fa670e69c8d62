package model

// Segment is one caption entry of a transcript: a start time in clip
// milliseconds and the text that becomes current at that time.
type Segment struct {
	StartMs int64  `json:"startMs"`
	EndMs   int64  `json:"endMs,omitempty"`
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text"`
}

// Transcript is the parsed content document a viewing session plays.
type Transcript struct {
	Title      string    `json:"title,omitempty"`
	Language   string    `json:"language,omitempty"`
	DurationMs int64     `json:"durationMs,omitempty"`
	Segments   []Segment `json:"segments"`
}

// Line is one wrapped display row produced by content layout.
// Y is its content-space top edge in pixels.
type Line struct {
	Text    string
	Y       float64
	Segment int
	StartMs int64
	IsFirst bool // first row of its segment
}

// Diagnostics captures everything a single offset resolution decided.
// Reported for the debug overlay and metrics; nothing reads it back into
// the next frame.
type Diagnostics struct {
	TimeMs        int64   `json:"timeMs"`
	Interval      int     `json:"interval"`
	T0            int64   `json:"t0"`
	T1            int64   `json:"t1"`
	O0            float64 `json:"o0"`
	O1            float64 `json:"o1"`
	Progress      float64 `json:"progress"`
	YRaw          float64 `json:"yRaw"`
	BaseOffset    float64 `json:"baseOffset"`
	SlopePxPerSec float64 `json:"slopePxPerSec"`
	ClampedTop    bool    `json:"clampedTop"`
	ClampedBottom bool    `json:"clampedBottom"`
	Offset        float64 `json:"offset"`
}

// InteractionState tracks display toggles the user controls directly.
// Pause state lives in the playback clock.
type InteractionState struct {
	ShowDebug bool
}
