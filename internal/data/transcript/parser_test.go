package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTranscriptObject(t *testing.T) {
	data := []byte(`{
		"title": "Episode 12",
		"durationMs": 90000,
		"segments": [
			{"startMs": 0, "text": "Hello and welcome."},
			{"startMs": 4000, "endMs": 9000, "speaker": "Ana", "text": "Thanks for having me."}
		]
	}`)

	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Episode 12", doc.Title)
	assert.Equal(t, int64(90000), doc.DurationMs)
	require.Len(t, doc.Segments, 2)
	assert.Equal(t, "Ana", doc.Segments[1].Speaker)
}

func TestParseBareSegmentArray(t *testing.T) {
	data := []byte(`[
		{"startMs": 1000, "text": "one"},
		{"startMs": 2000, "text": "two"}
	]`)

	doc, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, doc.Segments, 2)
	// Duration derived from the last segment start plus a tail.
	assert.Equal(t, int64(7000), doc.DurationMs)
}

func TestParseSortsSegmentsByStart(t *testing.T) {
	data := []byte(`[
		{"startMs": 5000, "text": "later"},
		{"startMs": 1000, "text": "earlier"},
		{"startMs": 3000, "endMs": 4500, "text": "middle"}
	]`)

	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "earlier", doc.Segments[0].Text)
	assert.Equal(t, "middle", doc.Segments[1].Text)
	assert.Equal(t, "later", doc.Segments[2].Text)
}

func TestParseDurationFromEndMs(t *testing.T) {
	data := []byte(`[{"startMs": 1000, "endMs": 8000, "text": "x"}]`)
	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, int64(8000), doc.DurationMs)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace", "   \n"},
		{"malformed_object", `{"segments": [}`},
		{"malformed_array", `[{"startMs": }]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "episode.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"startMs":0,"text":"hi"}]`), 0644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Segments, 1)

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
