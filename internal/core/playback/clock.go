package playback

import (
	"sync"
	"time"
)

// Clock is the playback position of one clip in milliseconds. It stands in
// for the audio subsystem: it advances with wall time while playing, holds
// while paused, and jumps only on explicit seeks. The sync engine reads it
// and never writes it.
type Clock struct {
	mu sync.Mutex

	anchor     time.Time // wall time the current run started
	anchorMs   int64     // position at the anchor
	rate       float64   // playback speed multiplier
	paused     bool
	durationMs int64 // 0 means unbounded
}

// NewClock creates a paused clock at position 0.
func NewClock(durationMs int64, rate float64) *Clock {
	if rate <= 0 {
		rate = 1.0
	}
	return &Clock{
		rate:       rate,
		paused:     true,
		durationMs: durationMs,
	}
}

// PositionMs returns the playback position at the given wall time,
// clamped to [0, duration].
func (c *Clock) PositionMs(now time.Time) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked(now)
}

func (c *Clock) positionLocked(now time.Time) int64 {
	pos := c.anchorMs
	if !c.paused {
		pos += int64(float64(now.Sub(c.anchor).Milliseconds()) * c.rate)
	}
	if pos < 0 {
		pos = 0
	}
	if c.durationMs > 0 && pos > c.durationMs {
		pos = c.durationMs
	}
	return pos
}

// Start begins (or resumes) playback from the current position.
func (c *Clock) Start(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.anchor = now
	c.paused = false
}

// Pause freezes the position at the given wall time.
func (c *Clock) Pause(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.anchorMs = c.positionLocked(now)
	c.anchor = now
	c.paused = true
}

// Toggle flips between playing and paused and returns the new paused state.
func (c *Clock) Toggle(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		c.anchor = now
		c.paused = false
	} else {
		c.anchorMs = c.positionLocked(now)
		c.anchor = now
		c.paused = true
	}
	return c.paused
}

// SeekTo jumps to an absolute position. Backward jumps are legal and take
// effect immediately; consumers re-locate on the next read.
func (c *Clock) SeekTo(now time.Time, ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms < 0 {
		ms = 0
	}
	if c.durationMs > 0 && ms > c.durationMs {
		ms = c.durationMs
	}
	c.anchorMs = ms
	c.anchor = now
}

// SeekBy jumps relative to the current position.
func (c *Clock) SeekBy(now time.Time, deltaMs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pos := c.positionLocked(now) + deltaMs
	if pos < 0 {
		pos = 0
	}
	if c.durationMs > 0 && pos > c.durationMs {
		pos = c.durationMs
	}
	c.anchorMs = pos
	c.anchor = now
}

// SetDuration updates the clip duration after a content reload. Position
// and paused state carry over; a position past the new duration clamps on
// the next read.
func (c *Clock) SetDuration(durationMs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.durationMs = durationMs
}

// Paused reports whether the clock is holding.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// DurationMs returns the clip duration, 0 when unknown.
func (c *Clock) DurationMs() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.durationMs
}
