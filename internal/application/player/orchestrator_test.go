package player

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testOrchestrator(t *testing.T, content string) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(&Config{
		TranscriptPath: writeTranscript(t, content),
	})
	require.NoError(t, err)
	return o
}

const basicTranscript = `{"segments":[
	{"startMs":0,"text":"first"},
	{"startMs":1000,"text":"second"},
	{"startMs":2000,"text":"third"}
]}`

func TestDiagnosticsSnapshotDuringReload(t *testing.T) {
	o := testOrchestrator(t, basicTranscript)
	require.NoError(t, o.loadContent())

	// The debug HTTP goroutine reads diagnostics while the loop goroutine
	// rebuilds content; both must be safe to run concurrently.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			snap, err := o.DiagnosticsJSON()
			assert.NoError(t, err)
			assert.NotNil(t, snap)
		}
	}()

	for i := 0; i < 50; i++ {
		require.NoError(t, o.loadContent())
	}
	<-done
}

func TestReloadKeepsClockPosition(t *testing.T) {
	o := testOrchestrator(t, basicTranscript)
	require.NoError(t, o.loadContent())

	now := time.Now()
	o.clock.SeekTo(now, 1500)
	o.clock.Start(now)

	clockBefore := o.clock
	require.NoError(t, o.loadContent())

	assert.Same(t, clockBefore, o.clock, "reload mutates the clock in place")
	assert.False(t, o.clock.Paused())
	assert.GreaterOrEqual(t, o.clock.PositionMs(now.Add(10*time.Millisecond)), int64(1500))
}

func TestCurrentSegmentFollowsPlayback(t *testing.T) {
	o := testOrchestrator(t, basicTranscript)
	require.NoError(t, o.loadContent())

	assert.Equal(t, 0, o.currentSegment(0))
	assert.Equal(t, 0, o.currentSegment(999))
	assert.Equal(t, 1, o.currentSegment(1000))
	assert.Equal(t, 2, o.currentSegment(5000), "past the last sample the final segment stays current")
}

func TestCurrentSegmentWithDuplicateStartTimes(t *testing.T) {
	// Two segments share a start time. The mounted map drops the
	// duplicate sample, so segment indices must come from the layout
	// samples rather than map intervals.
	o := testOrchestrator(t, `{"segments":[
		{"startMs":0,"text":"a"},
		{"startMs":1000,"text":"b"},
		{"startMs":1000,"text":"c"},
		{"startMs":2000,"text":"d"}
	]}`)
	require.NoError(t, o.loadContent())

	content := o.stateManager.GetContent()
	require.Len(t, content.Samples, 4)
	assert.Equal(t, 3, o.driver.Map().Len(), "map deduplicates the shared time")

	assert.Equal(t, 0, o.currentSegment(500))
	assert.Equal(t, 2, o.currentSegment(1000), "the later co-timed segment becomes current")
	assert.Equal(t, 2, o.currentSegment(1500))
	assert.Equal(t, 3, o.currentSegment(2500))
}

func TestCurrentSegmentWithoutContent(t *testing.T) {
	o := testOrchestrator(t, basicTranscript)
	assert.Equal(t, 0, o.currentSegment(1000))
}
