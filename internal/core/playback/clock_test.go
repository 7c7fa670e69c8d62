package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestClockStartsPausedAtZero(t *testing.T) {
	c := NewClock(60000, 1.0)
	assert.True(t, c.Paused())
	assert.Equal(t, int64(0), c.PositionMs(t0))
	assert.Equal(t, int64(0), c.PositionMs(t0.Add(time.Hour)))
}

func TestClockAdvancesWithWallTime(t *testing.T) {
	c := NewClock(60000, 1.0)
	c.Start(t0)

	assert.Equal(t, int64(0), c.PositionMs(t0))
	assert.Equal(t, int64(500), c.PositionMs(t0.Add(500*time.Millisecond)))
	assert.Equal(t, int64(2000), c.PositionMs(t0.Add(2*time.Second)))
}

func TestClockRate(t *testing.T) {
	c := NewClock(60000, 1.5)
	c.Start(t0)
	assert.Equal(t, int64(3000), c.PositionMs(t0.Add(2*time.Second)))

	// Non-positive rate falls back to realtime.
	c = NewClock(60000, 0)
	c.Start(t0)
	assert.Equal(t, int64(2000), c.PositionMs(t0.Add(2*time.Second)))
}

func TestClockPauseHoldsPosition(t *testing.T) {
	c := NewClock(60000, 1.0)
	c.Start(t0)
	c.Pause(t0.Add(1 * time.Second))

	assert.Equal(t, int64(1000), c.PositionMs(t0.Add(10*time.Second)))

	c.Start(t0.Add(10 * time.Second))
	assert.Equal(t, int64(1500), c.PositionMs(t0.Add(10*time.Second+500*time.Millisecond)))
}

func TestClockToggle(t *testing.T) {
	c := NewClock(60000, 1.0)

	paused := c.Toggle(t0)
	assert.False(t, paused)

	paused = c.Toggle(t0.Add(time.Second))
	assert.True(t, paused)
	assert.Equal(t, int64(1000), c.PositionMs(t0.Add(time.Minute)))
}

func TestClockSeek(t *testing.T) {
	c := NewClock(60000, 1.0)
	c.Start(t0)

	now := t0.Add(30 * time.Second)
	c.SeekTo(now, 5000)
	assert.Equal(t, int64(5000), c.PositionMs(now))
	assert.Equal(t, int64(6000), c.PositionMs(now.Add(time.Second)))

	// Backward relative seek from a later position.
	now = now.Add(10 * time.Second) // position 15000
	c.SeekBy(now, -12000)
	assert.Equal(t, int64(3000), c.PositionMs(now))

	// Seeks clamp into [0, duration].
	c.SeekBy(now, -99999)
	assert.Equal(t, int64(0), c.PositionMs(now))
	c.SeekTo(now, 99999999)
	assert.Equal(t, int64(60000), c.PositionMs(now))
}

func TestClockClampsAtDuration(t *testing.T) {
	c := NewClock(10000, 1.0)
	c.Start(t0)
	assert.Equal(t, int64(10000), c.PositionMs(t0.Add(time.Hour)))

	// Zero duration means unbounded.
	c = NewClock(0, 1.0)
	c.Start(t0)
	assert.Equal(t, int64(3600000), c.PositionMs(t0.Add(time.Hour)))
}

func TestClockSetDuration(t *testing.T) {
	c := NewClock(0, 1.0)
	c.SeekTo(t0, 8000)
	assert.Equal(t, int64(8000), c.PositionMs(t0))

	// Position and paused state survive a duration change.
	c.SetDuration(20000)
	assert.Equal(t, int64(8000), c.PositionMs(t0))
	assert.True(t, c.Paused())
	assert.Equal(t, int64(20000), c.DurationMs())

	// Shrinking below the current position clamps on the next read.
	c.SetDuration(5000)
	assert.Equal(t, int64(5000), c.PositionMs(t0))
}
