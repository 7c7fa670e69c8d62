package player

import (
	"sync"
	"time"

	"captionscroll/internal/core/constants"
	"captionscroll/internal/core/framehealth"
	"captionscroll/internal/core/geometry"
	"captionscroll/internal/core/interp"
	"captionscroll/internal/core/model"
	"captionscroll/internal/core/timemap"
	"captionscroll/internal/util"
)

// SyncDriver is the per-frame orchestrator of the scroll engine. Each
// frame it reads the playback time, resolves the scroll offset through
// the shared interpolation path, publishes it, and feeds the frame-health
// monitor.
//
// The driver has two states. INACTIVE: no map or unmeasured viewport, the
// published offset holds at 0 and no interpolation runs. ACTIVE: the full
// pipeline runs every frame. Mounting content flips to ACTIVE; unmounting
// (content change) flips back.
//
// Step is called only from the frame goroutine; the mutex exists for the
// readers (renderer, diagnostics sampler, debug server), which must never
// observe a half-updated offset.
type SyncDriver struct {
	mu sync.RWMutex

	tmap     *timemap.TimeOffsetMap
	viewport geometry.Viewport
	active   bool

	offset float64
	diag   model.Diagnostics

	monitor *framehealth.Monitor

	stallWarned bool
}

// NewSyncDriver creates an INACTIVE driver.
func NewSyncDriver(monitor *framehealth.Monitor) *SyncDriver {
	return &SyncDriver{monitor: monitor}
}

// Mount installs a freshly built map and viewport and activates the
// driver. The frame-health window restarts with the session.
func (d *SyncDriver) Mount(m *timemap.TimeOffsetMap, vp geometry.Viewport) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tmap = m
	d.viewport = vp
	d.active = m != nil && vp.Measured()
	d.offset = 0
	d.diag = model.Diagnostics{}
	d.stallWarned = false
	d.monitor.Reset()

	util.LogInfof("Sync driver mounted: %d samples, viewport %.0fpx, maxScroll %.0fpx",
		mapLen(m), vp.HeightPx, vp.MaxScrollOffset())
}

// Unmount discards the content and deactivates the driver.
func (d *SyncDriver) Unmount() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tmap = nil
	d.active = false
	d.offset = 0
	d.diag = model.Diagnostics{}
	d.monitor.Reset()
}

// SetViewport updates geometry after a resize. The scroll bounds are
// recomputed on the next step.
func (d *SyncDriver) SetViewport(vp geometry.Viewport) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.viewport = vp
	d.active = d.tmap != nil && vp.Measured()
}

// Step runs one frame: resolve the offset for playback time tMs and
// record the frame arrival. Returns the published offset and whether the
// frame was janked. Pure in tMs aside from the frame-health side channel:
// identical inputs produce identical offsets, including immediately after
// a backward seek.
func (d *SyncDriver) Step(tMs int64, now time.Time) (float64, bool) {
	janked := d.monitor.Tick(now)

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		d.offset = 0
		d.diag = model.Diagnostics{TimeMs: tMs}
		return 0, janked
	}

	offset, diag := interp.Resolve(d.tmap, tMs, d.viewport)
	d.offset = offset
	d.diag = diag

	d.checkStallLocked(tMs)
	return offset, janked
}

// checkStallLocked warns once per session when playback has run well past
// the first sample but the resolved interval never advanced, which points
// at a malformed sample sequence upstream. Diagnostic only; rendering
// continues.
func (d *SyncDriver) checkStallLocked(tMs int64) {
	if d.stallWarned || d.tmap.Len() < 3 {
		return
	}
	if d.diag.Interval == 0 && tMs > d.tmap.TimeAt(1)+constants.StallWarnAfterMs {
		util.LogWarnf("Scroll sync stalled at interval 0 with playback at %dms; sample sequence may be malformed", tMs)
		d.stallWarned = true
	}
}

// Offset returns the last published scroll offset.
func (d *SyncDriver) Offset() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.offset
}

// Diagnostics returns the last frame's full resolution record.
func (d *SyncDriver) Diagnostics() model.Diagnostics {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.diag
}

// Viewport returns the current geometry.
func (d *SyncDriver) Viewport() geometry.Viewport {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.viewport
}

// Map returns the mounted time/offset map, nil when INACTIVE.
func (d *SyncDriver) Map() *timemap.TimeOffsetMap {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tmap
}

// Active reports whether the full pipeline is running.
func (d *SyncDriver) Active() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.active
}

func mapLen(m *timemap.TimeOffsetMap) int {
	if m == nil {
		return 0
	}
	return m.Len()
}
