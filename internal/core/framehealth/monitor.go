package framehealth

import (
	"sync"
	"time"

	"captionscroll/internal/core/constants"
)

// Stats is a point-in-time summary of frame delivery.
type Stats struct {
	Frames  uint64        `json:"frames"`
	Janks   uint64        `json:"janks"`
	FPS     int           `json:"fps"`
	LastGap time.Duration `json:"lastGap"`
}

// Monitor samples wall-clock frame arrivals and keeps a rolling window of
// recent timestamps to estimate effective FPS and spot dropped frames.
// It only observes: a janked frame is counted and reported, never acted on.
type Monitor struct {
	mu sync.Mutex

	window        time.Duration
	jankThreshold time.Duration

	// ring of frame arrival times inside the window
	stamps []time.Time
	head   int
	count  int

	last    time.Time
	lastGap time.Duration
	frames  uint64
	janks   uint64
}

// NewMonitor creates a monitor tuned for the given target refresh rate.
func NewMonitor(targetFPS int) *Monitor {
	if targetFPS <= 0 {
		targetFPS = constants.DefaultTargetFPS
	}
	interval := time.Second / time.Duration(targetFPS)
	return &Monitor{
		window:        constants.FPSWindow,
		jankThreshold: interval * constants.JankGapFactor,
		// Headroom above the target rate so a fast display never evicts
		// timestamps still inside the window.
		stamps: make([]time.Time, targetFPS*2+8),
	}
}

// Tick records one frame arrival and reports whether the gap since the
// previous frame classifies it as janked. Never blocks beyond its own
// mutex; the frame loop is the only caller.
func (m *Monitor) Tick(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.frames++

	janked := false
	if !m.last.IsZero() {
		m.lastGap = now.Sub(m.last)
		if m.lastGap > m.jankThreshold {
			m.janks++
			janked = true
		}
	}
	m.last = now

	m.evict(now)
	if m.count == len(m.stamps) {
		// Window overflow: drop the oldest sample.
		m.head = (m.head + 1) % len(m.stamps)
		m.count--
	}
	m.stamps[(m.head+m.count)%len(m.stamps)] = now
	m.count++

	return janked
}

// CurrentFPS returns the number of frames that arrived within the rolling
// window ending at the most recent sample.
func (m *Monitor) CurrentFPS() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evict(m.last)
	return m.count
}

// Snapshot returns the current stats.
func (m *Monitor) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evict(m.last)
	return Stats{
		Frames:  m.frames,
		Janks:   m.janks,
		FPS:     m.count,
		LastGap: m.lastGap,
	}
}

// Reset clears the window and counters. Called when a viewing session
// mounts or unmounts.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.head = 0
	m.count = 0
	m.last = time.Time{}
	m.lastGap = 0
	m.frames = 0
	m.janks = 0
}

// evict drops ring entries older than the window. Caller holds the mutex.
func (m *Monitor) evict(now time.Time) {
	cutoff := now.Add(-m.window)
	for m.count > 0 && m.stamps[m.head].Before(cutoff) {
		m.head = (m.head + 1) % len(m.stamps)
		m.count--
	}
}
