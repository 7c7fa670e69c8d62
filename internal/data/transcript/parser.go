package transcript

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bytedance/sonic"

	"captionscroll/internal/core/model"
	"captionscroll/internal/util"
)

// ParseFile reads a transcript JSON document from disk.
//
// The document is either a full Transcript object or a bare array of
// segments. Segments are sorted by start time; empty-text segments are
// kept (they still anchor a scroll position). A missing duration is
// derived from the last segment.
func ParseFile(path string) (*model.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes transcript JSON.
func Parse(data []byte) (*model.Transcript, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("transcript is empty")
	}

	var t model.Transcript
	if strings.HasPrefix(trimmed, "[") {
		if err := sonic.Unmarshal(data, &t.Segments); err != nil {
			return nil, fmt.Errorf("failed to parse segment array: %w", err)
		}
	} else {
		if err := sonic.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to parse transcript: %w", err)
		}
	}

	sort.SliceStable(t.Segments, func(i, j int) bool {
		return t.Segments[i].StartMs < t.Segments[j].StartMs
	})

	if t.DurationMs == 0 && len(t.Segments) > 0 {
		last := t.Segments[len(t.Segments)-1]
		if last.EndMs > last.StartMs {
			t.DurationMs = last.EndMs
		} else {
			t.DurationMs = last.StartMs + 5000
		}
	}

	util.LogDebugf("Parsed transcript: %d segments, duration %dms", len(t.Segments), t.DurationMs)
	return &t, nil
}
