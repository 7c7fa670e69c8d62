package transcript

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"captionscroll/internal/core/geometry"
	"captionscroll/internal/core/model"
)

func testViewport(widthCols int) geometry.Viewport {
	return geometry.Viewport{
		WidthCols:    widthCols,
		HeightPx:     480,
		LineHeightPx: 24,
	}
}

func TestFlowOneSamplePerSegment(t *testing.T) {
	doc := &model.Transcript{Segments: []model.Segment{
		{StartMs: 0, Text: "short"},
		{StartMs: 2000, Text: "also short"},
		{StartMs: 5000, Text: "third"},
	}}

	flow := Flow(doc, testViewport(40))
	require.Len(t, flow.Samples, 3)
	assert.Equal(t, int64(0), flow.Samples[0].TimeMs)
	assert.Equal(t, int64(2000), flow.Samples[1].TimeMs)
	assert.Equal(t, int64(5000), flow.Samples[2].TimeMs)

	// One row per short segment: offsets accumulate one line height each.
	assert.Equal(t, 0.0, flow.Samples[0].OffsetPx)
	assert.Equal(t, 24.0, flow.Samples[1].OffsetPx)
	assert.Equal(t, 48.0, flow.Samples[2].OffsetPx)
	assert.Equal(t, 72.0, flow.ContentHeight)
}

func TestFlowWrapsLongSegments(t *testing.T) {
	doc := &model.Transcript{Segments: []model.Segment{
		{StartMs: 0, Text: "aaaa bbbb cccc dddd eeee ffff"},
		{StartMs: 1000, Text: "next"},
	}}

	// Width 10 fits two 4-wide words per row: three rows for segment one.
	flow := Flow(doc, testViewport(10))
	require.Len(t, flow.Samples, 2)
	assert.Equal(t, 0.0, flow.Samples[0].OffsetPx)
	assert.Equal(t, 72.0, flow.Samples[1].OffsetPx)
	assert.Len(t, flow.Lines, 4)

	for _, line := range flow.Lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line.Text), 10)
	}
	assert.True(t, flow.Lines[0].IsFirst)
	assert.False(t, flow.Lines[1].IsFirst)
	assert.Equal(t, 0, flow.Lines[2].Segment)
	assert.Equal(t, 1, flow.Lines[3].Segment)
}

func TestFlowSpeakerPrefix(t *testing.T) {
	doc := &model.Transcript{Segments: []model.Segment{
		{StartMs: 0, Speaker: "Ana", Text: "hello"},
	}}

	flow := Flow(doc, testViewport(40))
	require.Len(t, flow.Lines, 1)
	assert.Equal(t, "Ana: hello", flow.Lines[0].Text)
}

func TestFlowEmptySegmentStillAnchors(t *testing.T) {
	doc := &model.Transcript{Segments: []model.Segment{
		{StartMs: 0, Text: "first"},
		{StartMs: 1000, Text: ""},
		{StartMs: 2000, Text: "third"},
	}}

	flow := Flow(doc, testViewport(40))
	require.Len(t, flow.Samples, 3)
	assert.Equal(t, 24.0, flow.Samples[1].OffsetPx)
	assert.Equal(t, 48.0, flow.Samples[2].OffsetPx)
}

func TestFlowHardBreaksOversizedWords(t *testing.T) {
	doc := &model.Transcript{Segments: []model.Segment{
		{StartMs: 0, Text: "abcdefghijklmnopqrstuvwxyz"},
	}}

	flow := Flow(doc, testViewport(10))
	require.Len(t, flow.Lines, 3)
	for _, line := range flow.Lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line.Text), 10)
	}
}

func TestFlowWideRunes(t *testing.T) {
	// CJK runes are two columns wide; five of them fill a 10-wide row.
	doc := &model.Transcript{Segments: []model.Segment{
		{StartMs: 0, Text: "こんにちは世界のみなさん"},
	}}

	flow := Flow(doc, testViewport(10))
	for _, line := range flow.Lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line.Text), 10)
	}
	assert.GreaterOrEqual(t, len(flow.Lines), 2)
}

func TestFlowEmptyTranscript(t *testing.T) {
	flow := Flow(&model.Transcript{}, testViewport(40))
	assert.Empty(t, flow.Samples)
	assert.Empty(t, flow.Lines)
	assert.Equal(t, 0.0, flow.ContentHeight)
}

func TestFlowSamplesAscending(t *testing.T) {
	doc := &model.Transcript{Segments: []model.Segment{
		{StartMs: 100, Text: "a"},
		{StartMs: 200, Text: "b c d e f g h i j k l m n o p"},
		{StartMs: 900, Text: "z"},
	}}

	flow := Flow(doc, testViewport(12))
	for i := 1; i < len(flow.Samples); i++ {
		assert.Greater(t, flow.Samples[i].TimeMs, flow.Samples[i-1].TimeMs)
		assert.GreaterOrEqual(t, flow.Samples[i].OffsetPx, flow.Samples[i-1].OffsetPx)
	}
}
