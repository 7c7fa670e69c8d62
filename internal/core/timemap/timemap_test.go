package timemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestMap(times []int64, offsets []float64) *TimeOffsetMap {
	samples := make([]Sample, len(times))
	for i := range times {
		samples[i] = Sample{TimeMs: times[i], OffsetPx: offsets[i]}
	}
	return New(samples)
}

func TestNewDropsNonIncreasingSamples(t *testing.T) {
	tests := []struct {
		name        string
		times       []int64
		offsets     []float64
		wantLen     int
		wantTimes   []int64
		wantOffsets []float64
	}{
		{
			name:        "already_ascending",
			times:       []int64{0, 1000, 2000},
			offsets:     []float64{0, 100, 300},
			wantLen:     3,
			wantTimes:   []int64{0, 1000, 2000},
			wantOffsets: []float64{0, 100, 300},
		},
		{
			name:        "duplicate_time_keeps_first",
			times:       []int64{0, 1000, 1000, 2000},
			offsets:     []float64{0, 100, 150, 300},
			wantLen:     3,
			wantTimes:   []int64{0, 1000, 2000},
			wantOffsets: []float64{0, 100, 300},
		},
		{
			name:        "out_of_order_dropped",
			times:       []int64{0, 2000, 1000, 3000},
			offsets:     []float64{0, 100, 50, 300},
			wantLen:     3,
			wantTimes:   []int64{0, 2000, 3000},
			wantOffsets: []float64{0, 100, 300},
		},
		{
			name:    "empty",
			times:   nil,
			offsets: nil,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMap(tt.times, tt.offsets)
			assert.Equal(t, tt.wantLen, m.Len())
			for i := 0; i < m.Len(); i++ {
				assert.Equal(t, tt.wantTimes[i], m.TimeAt(i))
				assert.Equal(t, tt.wantOffsets[i], m.OffsetAt(i))
			}
		})
	}
}

func TestLocateBrackets(t *testing.T) {
	m := newTestMap([]int64{0, 1000, 2000, 3500}, []float64{0, 100, 300, 500})

	tests := []struct {
		name string
		t    int64
		want int
	}{
		{"well_before_first", -500, 0},
		{"at_first_sample", 0, 0},
		{"inside_first_interval", 500, 0},
		{"at_interior_boundary", 1000, 1},
		{"inside_second_interval", 1500, 1},
		{"at_second_boundary", 2000, 2},
		{"inside_last_interval", 3000, 2},
		{"at_last_sample", 3500, 2},
		{"past_last_sample", 9999, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Locate(tt.t))
		})
	}
}

func TestLocateBracketInvariant(t *testing.T) {
	m := newTestMap([]int64{10, 20, 40, 80, 160, 320}, []float64{0, 1, 2, 3, 4, 5})

	for q := int64(10); q <= 320; q++ {
		i := m.Locate(q)
		assert.GreaterOrEqual(t, i, 0)
		assert.LessOrEqual(t, i, m.Len()-2)
		assert.LessOrEqual(t, m.TimeAt(i), q)
		assert.GreaterOrEqual(t, m.TimeAt(i+1), q)
	}
}

func TestLocateDegenerateMaps(t *testing.T) {
	empty := newTestMap(nil, nil)
	assert.Equal(t, 0, empty.Locate(1234))

	single := newTestMap([]int64{500}, []float64{42})
	assert.Equal(t, 0, single.Locate(0))
	assert.Equal(t, 0, single.Locate(500))
	assert.Equal(t, 0, single.Locate(99999))
}

func TestFirstLastTime(t *testing.T) {
	m := newTestMap([]int64{100, 900}, []float64{0, 10})
	assert.Equal(t, int64(100), m.FirstTime())
	assert.Equal(t, int64(900), m.LastTime())

	empty := newTestMap(nil, nil)
	assert.Equal(t, int64(0), empty.FirstTime())
	assert.Equal(t, int64(0), empty.LastTime())
}
