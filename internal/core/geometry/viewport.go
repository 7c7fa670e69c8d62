package geometry

// Viewport describes the scrollable area of one content-viewing session.
// Heights and paddings are device-independent pixels; WidthCols is the
// wrap width in display columns, used by content layout rather than by
// offset math.
type Viewport struct {
	WidthCols       int
	HeightPx        float64
	ContentHeightPx float64
	TopPaddingPx    float64
	BottomPaddingPx float64
	LineHeightPx    float64
}

// MaxScrollOffset returns the largest valid scroll offset, never negative.
func (v Viewport) MaxScrollOffset() float64 {
	m := v.ContentHeightPx + v.TopPaddingPx + v.BottomPaddingPx - v.HeightPx
	if m < 0 {
		return 0
	}
	return m
}

// BaseOffset is the vertical centering bias: it shifts the raw content
// position so the current row sits in the middle of the viewport instead
// of at its top edge.
func (v Viewport) BaseOffset() float64 {
	return v.TopPaddingPx - (v.HeightPx/2 - v.LineHeightPx/2)
}

// Measured reports whether the viewport has a usable size yet.
func (v Viewport) Measured() bool {
	return v.HeightPx > 0 && v.LineHeightPx > 0
}

// Clamp constrains x to the closed range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
