package interp

import (
	"math"

	"captionscroll/internal/core/geometry"
	"captionscroll/internal/core/model"
	"captionscroll/internal/core/timemap"
)

// Resolve maps playback time t to a scroll offset for the given viewport.
//
// The query time is clamped to the sample range first, so interpolation
// only ever runs inside a bracketing interval where progress lies in
// [0,1] by construction; outside the range the offset holds flat at the
// first or last sample. Degenerate maps (fewer than two samples) resolve
// to a constant. The returned offset is always finite and lies in
// [0, MaxScrollOffset]; the same call backs both the per-frame driver and
// the lower-rate diagnostics sampler, so the overlay can never diverge
// from the applied offset.
func Resolve(m *timemap.TimeOffsetMap, t int64, vp geometry.Viewport) (float64, model.Diagnostics) {
	base := vp.BaseOffset()
	maxOffset := vp.MaxScrollOffset()

	diag := model.Diagnostics{
		TimeMs:     t,
		BaseOffset: base,
	}

	var yRaw float64
	switch n := m.Len(); {
	case n == 0:
		yRaw = 0
	case n == 1:
		yRaw = m.OffsetAt(0)
		diag.T0, diag.T1 = m.TimeAt(0), m.TimeAt(0)
		diag.O0, diag.O1 = yRaw, yRaw
	default:
		// Flat extrapolation: hold the first/last offset outside the range.
		tc := t
		if tc < m.FirstTime() {
			tc = m.FirstTime()
		} else if tc > m.LastTime() {
			tc = m.LastTime()
		}

		i := m.Locate(tc)
		t0, t1 := m.TimeAt(i), m.TimeAt(i+1)
		o0, o1 := m.OffsetAt(i), m.OffsetAt(i+1)

		p := 0.0
		if t1 > t0 {
			p = float64(tc-t0) / float64(t1-t0)
			diag.SlopePxPerSec = (o1 - o0) / (float64(t1-t0) / 1000.0)
		}
		yRaw = o0 + p*(o1-o0)

		diag.Interval = i
		diag.T0, diag.T1 = t0, t1
		diag.O0, diag.O1 = o0, o1
		diag.Progress = p
	}

	target := yRaw + base
	if math.IsNaN(target) || math.IsInf(target, 0) {
		yRaw = 0
		target = base
		if math.IsNaN(target) || math.IsInf(target, 0) {
			target = 0
		}
	}
	diag.YRaw = yRaw

	diag.ClampedTop = target < 0
	diag.ClampedBottom = target > maxOffset
	diag.Offset = geometry.Clamp(target, 0, maxOffset)

	return diag.Offset, diag
}
