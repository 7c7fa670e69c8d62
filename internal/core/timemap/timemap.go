package timemap

import (
	"sort"

	"captionscroll/internal/util"
)

// Sample pairs a playback time with the content-space scroll position that
// is correct at that time.
type Sample struct {
	TimeMs   int64   `json:"timeMs"`
	OffsetPx float64 `json:"offsetPx"`
}

// TimeOffsetMap is an immutable, time-ordered sample table built once per
// content load. Times are strictly increasing; offsets are free-form.
type TimeOffsetMap struct {
	times   []int64
	offsets []float64
}

// New builds a map from samples already sorted ascending by time.
// Samples whose time does not strictly increase are dropped, keeping the
// first occurrence; a malformed input degrades to a shorter map rather
// than an error.
func New(samples []Sample) *TimeOffsetMap {
	m := &TimeOffsetMap{
		times:   make([]int64, 0, len(samples)),
		offsets: make([]float64, 0, len(samples)),
	}

	dropped := 0
	for _, s := range samples {
		if n := len(m.times); n > 0 && s.TimeMs <= m.times[n-1] {
			dropped++
			continue
		}
		m.times = append(m.times, s.TimeMs)
		m.offsets = append(m.offsets, s.OffsetPx)
	}

	if dropped > 0 {
		util.LogWarnf("Time/offset map dropped %d non-increasing samples (kept %d)", dropped, len(m.times))
	}
	return m
}

// Len returns the number of samples.
func (m *TimeOffsetMap) Len() int {
	return len(m.times)
}

// TimeAt returns the time of sample i in milliseconds.
func (m *TimeOffsetMap) TimeAt(i int) int64 {
	return m.times[i]
}

// OffsetAt returns the content-space offset of sample i in pixels.
func (m *TimeOffsetMap) OffsetAt(i int) float64 {
	return m.offsets[i]
}

// FirstTime returns the time of the first sample, or 0 for an empty map.
func (m *TimeOffsetMap) FirstTime() int64 {
	if len(m.times) == 0 {
		return 0
	}
	return m.times[0]
}

// LastTime returns the time of the last sample, or 0 for an empty map.
func (m *TimeOffsetMap) LastTime() int64 {
	if len(m.times) == 0 {
		return 0
	}
	return m.times[len(m.times)-1]
}

// Locate finds the bracketing interval index i for query time t such that
// TimeAt(i) <= t <= TimeAt(i+1) whenever such an interval exists.
//
// t at or before the first sample resolves to interval 0; t at or past the
// last sample resolves to the last interval. Maps with fewer than two
// samples always resolve to interval 0. O(log n).
func (m *TimeOffsetMap) Locate(t int64) int {
	n := len(m.times)
	if n < 2 {
		return 0
	}

	// Insertion point: first index whose time is strictly greater than t.
	idx := sort.Search(n, func(i int) bool { return m.times[i] > t })

	i := idx - 1
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	return i
}
