package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"captionscroll/internal/core/constants"
	"captionscroll/internal/core/framehealth"
	"captionscroll/internal/core/geometry"
	"captionscroll/internal/core/timemap"
)

var frameTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testDriver() *SyncDriver {
	return NewSyncDriver(framehealth.NewMonitor(60))
}

func testMap() *timemap.TimeOffsetMap {
	return timemap.New([]timemap.Sample{
		{TimeMs: 0, OffsetPx: 0},
		{TimeMs: 1000, OffsetPx: 100},
		{TimeMs: 2000, OffsetPx: 300},
	})
}

func tallViewport() geometry.Viewport {
	return geometry.Viewport{
		HeightPx:        100,
		ContentHeightPx: 500,
		TopPaddingPx:    50,
		LineHeightPx:    24,
	}
}

func TestDriverInactiveHoldsZero(t *testing.T) {
	d := testDriver()
	assert.False(t, d.Active())

	offset, _ := d.Step(1500, frameTime)
	assert.Equal(t, 0.0, offset)
	assert.Equal(t, 0.0, d.Offset())
}

func TestDriverMountActivates(t *testing.T) {
	d := testDriver()
	vp := tallViewport()
	d.Mount(testMap(), vp)
	require.True(t, d.Active())

	base := vp.BaseOffset()
	offset, _ := d.Step(1000, frameTime)
	assert.Equal(t, 100.0+base, offset)
	assert.Equal(t, offset, d.Offset())
	assert.Equal(t, 1, d.Diagnostics().Interval)
}

func TestDriverUnmeasuredViewportStaysInactive(t *testing.T) {
	d := testDriver()
	d.Mount(testMap(), geometry.Viewport{})
	assert.False(t, d.Active())

	offset, _ := d.Step(1000, frameTime)
	assert.Equal(t, 0.0, offset)
}

func TestDriverBackwardSeekRelocatesImmediately(t *testing.T) {
	d := testDriver()
	d.Mount(testMap(), tallViewport())

	d.Step(1900, frameTime)
	assert.Equal(t, 1, d.Diagnostics().Interval)

	// The very next frame after the clock jumped backward resolves the
	// first interval with no residual state.
	offset, _ := d.Step(100, frameTime.Add(16*time.Millisecond))
	assert.Equal(t, 0, d.Diagnostics().Interval)

	expected, _ := d.Step(100, frameTime.Add(32*time.Millisecond))
	assert.Equal(t, expected, offset, "offset is a pure function of time")
}

func TestDriverStepIdempotent(t *testing.T) {
	d := testDriver()
	d.Mount(testMap(), tallViewport())

	a, _ := d.Step(777, frameTime)
	b, _ := d.Step(777, frameTime.Add(16*time.Millisecond))
	assert.Equal(t, a, b)
}

func TestDriverUnmountDeactivates(t *testing.T) {
	d := testDriver()
	d.Mount(testMap(), tallViewport())
	d.Step(1500, frameTime)
	require.True(t, d.Active())

	d.Unmount()
	assert.False(t, d.Active())
	assert.Equal(t, 0.0, d.Offset())
	assert.Nil(t, d.Map())

	offset, _ := d.Step(1500, frameTime.Add(time.Second))
	assert.Equal(t, 0.0, offset)
}

func TestDriverSetViewportRebounds(t *testing.T) {
	d := testDriver()
	d.Mount(testMap(), tallViewport())

	// Shrink content so the previous offset would exceed the new bounds.
	small := tallViewport()
	small.ContentHeightPx = 50
	d.SetViewport(small)

	offset, _ := d.Step(2000, frameTime)
	assert.LessOrEqual(t, offset, small.MaxScrollOffset())
	assert.GreaterOrEqual(t, offset, 0.0)
}

func TestDriverStallWarningNeverFiresOnHealthyMap(t *testing.T) {
	d := testDriver()
	d.Mount(testMap(), tallViewport())

	// A well-formed map always advances the interval once playback passes
	// the second sample, so stepping far beyond the warning threshold
	// leaves the flag untouched.
	now := frameTime
	for q := int64(0); q <= 2000+constants.StallWarnAfterMs+1000; q += 500 {
		d.Step(q, now)
		now = now.Add(16 * time.Millisecond)
	}
	assert.False(t, d.stallWarned)
}

func TestDriverStallWarningLatchesOnce(t *testing.T) {
	d := testDriver()
	d.Mount(testMap(), tallViewport())
	d.Step(500, frameTime)

	// Force the stuck-interval state the check defends against.
	d.diag.Interval = 0
	threshold := d.tmap.TimeAt(1) + constants.StallWarnAfterMs

	d.checkStallLocked(threshold)
	assert.False(t, d.stallWarned, "at the threshold exactly, no warning yet")

	d.checkStallLocked(threshold + 1)
	assert.True(t, d.stallWarned)

	d.diag.Interval = 0
	d.checkStallLocked(threshold + 2000)
	assert.True(t, d.stallWarned, "the warning latches for the session")

	// Frames keep resolving normally after the warning.
	offset, _ := d.Step(1000, frameTime.Add(time.Second))
	assert.Equal(t, 100.0+tallViewport().BaseOffset(), offset)
	assert.True(t, d.Active())

	// Mounting fresh content rearms the check.
	d.Mount(testMap(), tallViewport())
	assert.False(t, d.stallWarned)
}

func TestDriverOffsetAlwaysInRange(t *testing.T) {
	d := testDriver()
	vp := tallViewport()
	d.Mount(testMap(), vp)

	now := frameTime
	for q := int64(-500); q <= 3000; q += 73 {
		offset, _ := d.Step(q, now)
		assert.GreaterOrEqual(t, offset, 0.0)
		assert.LessOrEqual(t, offset, vp.MaxScrollOffset())
		now = now.Add(16 * time.Millisecond)
	}
}
