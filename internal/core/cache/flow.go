package cache

import (
	"sync"
	"time"

	"captionscroll/internal/data/transcript"
	"captionscroll/internal/util"
)

// flowEntry tracks access time so eviction can drop the width the user
// resized away from longest ago.
type flowEntry struct {
	flow         *transcript.Layout
	lastAccessed int64
}

// FlowCache memoizes content layout per wrap width. Re-flowing a long
// transcript on every resize tick is wasteful when the user drags a
// terminal edge back and forth between the same few widths; the cache
// keeps the most recent flows and hands them back without recomputing.
//
// Entries are invalidated wholesale when the transcript itself changes.
type FlowCache struct {
	mu       sync.RWMutex
	entries  map[int]*flowEntry
	capacity int
}

func NewFlowCache(capacity int) *FlowCache {
	if capacity < 1 {
		capacity = 1
	}
	return &FlowCache{
		entries:  make(map[int]*flowEntry),
		capacity: capacity,
	}
}

// Get returns the cached flow for the given wrap width, if present.
func (fc *FlowCache) Get(widthCols int) (*transcript.Layout, bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	entry, ok := fc.entries[widthCols]
	if !ok {
		return nil, false
	}
	entry.lastAccessed = time.Now().Unix()
	return entry.flow, true
}

// Set stores a flow for the given wrap width, evicting the least
// recently used width when the cache is full.
func (fc *FlowCache) Set(widthCols int, flow *transcript.Layout) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if _, ok := fc.entries[widthCols]; !ok && len(fc.entries) >= fc.capacity {
		fc.evictOldestLocked()
	}
	fc.entries[widthCols] = &flowEntry{
		flow:         flow,
		lastAccessed: time.Now().Unix(),
	}
}

// Clear drops every cached flow. Called when the transcript content
// changes, since old flows describe the old content.
func (fc *FlowCache) Clear() {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if len(fc.entries) > 0 {
		util.LogDebugf("FlowCache: dropping %d cached flows after content change", len(fc.entries))
	}
	fc.entries = make(map[int]*flowEntry)
}

// Len returns the number of cached widths.
func (fc *FlowCache) Len() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.entries)
}

func (fc *FlowCache) evictOldestLocked() {
	oldestWidth := -1
	var oldestAccess int64
	for width, entry := range fc.entries {
		if oldestWidth == -1 || entry.lastAccessed < oldestAccess {
			oldestWidth = width
			oldestAccess = entry.lastAccessed
		}
	}
	if oldestWidth != -1 {
		delete(fc.entries, oldestWidth)
	}
}
