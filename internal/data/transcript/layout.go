package transcript

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"captionscroll/internal/core/geometry"
	"captionscroll/internal/core/model"
	"captionscroll/internal/core/timemap"
)

// Layout is the result of flowing a transcript into a viewport: the wrapped
// display rows, their accumulated content height, and the time/offset
// sample sequence the sync engine scrolls by.
type Layout struct {
	Lines         []model.Line
	ContentHeight float64
	Samples       []timemap.Sample
}

// Flow wraps every segment to the viewport width and accumulates row
// heights into content-space y positions. Each segment contributes one
// sample: the y of its first row paired with its start time. Re-run
// whenever the viewport width or the transcript changes.
func Flow(t *model.Transcript, vp geometry.Viewport) *Layout {
	lh := vp.LineHeightPx
	width := vp.WidthCols
	if width < 10 {
		width = 10
	}

	out := &Layout{}
	var y float64

	for si, seg := range t.Segments {
		text := seg.Text
		if seg.Speaker != "" {
			text = seg.Speaker + ": " + text
		}

		rows := wrap(text, width)
		if len(rows) == 0 {
			rows = []string{""}
		}

		out.Samples = append(out.Samples, timemap.Sample{
			TimeMs:   seg.StartMs,
			OffsetPx: y,
		})

		for ri, row := range rows {
			out.Lines = append(out.Lines, model.Line{
				Text:    row,
				Y:       y,
				Segment: si,
				StartMs: seg.StartMs,
				IsFirst: ri == 0,
			})
			y += lh
		}
	}

	out.ContentHeight = y
	return out
}

// wrap breaks text into rows of at most width display columns, splitting
// on spaces and hard-breaking words wider than a whole row.
func wrap(text string, width int) []string {
	var rows []string
	var row strings.Builder
	rowWidth := 0

	flush := func() {
		rows = append(rows, row.String())
		row.Reset()
		rowWidth = 0
	}

	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)

		if w > width {
			// Hard-break an unbreakable word rune by rune.
			if rowWidth > 0 {
				flush()
			}
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if rowWidth+rw > width {
					flush()
				}
				row.WriteRune(r)
				rowWidth += rw
			}
			continue
		}

		sep := 0
		if rowWidth > 0 {
			sep = 1
		}
		if rowWidth+sep+w > width {
			flush()
			sep = 0
		}
		if sep > 0 {
			row.WriteByte(' ')
			rowWidth++
		}
		row.WriteString(word)
		rowWidth += w
	}

	if rowWidth > 0 || row.Len() > 0 {
		flush()
	}
	return rows
}
