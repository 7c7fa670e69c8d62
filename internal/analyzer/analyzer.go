package analyzer

import (
	"fmt"
	"time"

	"captionscroll/internal/core/constants"
	"captionscroll/internal/core/geometry"
	"captionscroll/internal/data/transcript"
	"captionscroll/internal/presentation/formatter"
	"captionscroll/internal/util"
)

// Config holds settings for the offline transcript inspection.
type Config struct {
	TranscriptPath string
	OutputFormat   string // table, json, csv

	// Layout settings mirroring the player so the report matches what
	// playback would use
	WidthCols       int
	ViewportRows    int
	LineHeightPx    float64
	TopPaddingPx    float64 // negative means auto
	BottomPaddingPx float64 // negative means auto
}

type Analyzer struct {
	config *Config
}

func New(config *Config) *Analyzer {
	if config.WidthCols == 0 {
		config.WidthCols = 72
	}
	if config.ViewportRows == 0 {
		config.ViewportRows = 22
	}
	if config.LineHeightPx == 0 {
		config.LineHeightPx = constants.DefaultLineHeightPx
	}
	return &Analyzer{config: config}
}

// Run parses the transcript, flows it into the configured viewport, and
// prints the time/offset sample table in the selected format.
func (a *Analyzer) Run() error {
	startTime := time.Now()
	util.LogInfof("Inspecting transcript %s...", a.config.TranscriptPath)

	doc, err := transcript.ParseFile(a.config.TranscriptPath)
	if err != nil {
		return err
	}

	vp := a.buildViewport()
	flow := transcript.Flow(doc, vp)
	vp.ContentHeightPx = flow.ContentHeight

	report := &formatter.Report{
		Source:        a.config.TranscriptPath,
		Segments:      len(doc.Segments),
		Lines:         len(flow.Lines),
		ContentHeight: flow.ContentHeight,
		MaxScroll:     vp.MaxScrollOffset(),
		BaseOffset:    vp.BaseOffset(),
		DurationMs:    doc.DurationMs,
	}

	for i, s := range flow.Samples {
		row := formatter.SampleRow{
			Index:    i,
			TimeMs:   s.TimeMs,
			OffsetPx: s.OffsetPx,
			Preview:  util.TruncateToWidth(doc.Segments[i].Text, 32),
		}
		if i+1 < len(flow.Samples) {
			next := flow.Samples[i+1]
			row.IntervalMs = next.TimeMs - s.TimeMs
			if row.IntervalMs > 0 {
				row.SlopePxPerSec = (next.OffsetPx - s.OffsetPx) / (float64(row.IntervalMs) / 1000.0)
			}
		}
		report.Samples = append(report.Samples, row)
	}

	f, err := a.formatter()
	if err != nil {
		return err
	}
	if err := f.Format(report); err != nil {
		return err
	}

	util.LogDebugf("Inspection completed in %v", time.Since(startTime))
	return nil
}

func (a *Analyzer) buildViewport() geometry.Viewport {
	lh := a.config.LineHeightPx
	vh := float64(a.config.ViewportRows) * lh

	topPad := a.config.TopPaddingPx
	bottomPad := a.config.BottomPaddingPx
	centerPad := vh/2 - lh/2
	if topPad < 0 {
		topPad = centerPad
	}
	if bottomPad < 0 {
		bottomPad = centerPad
	}

	return geometry.Viewport{
		WidthCols:       a.config.WidthCols,
		HeightPx:        vh,
		TopPaddingPx:    topPad,
		BottomPaddingPx: bottomPad,
		LineHeightPx:    lh,
	}
}

func (a *Analyzer) formatter() (formatter.Formatter, error) {
	switch a.config.OutputFormat {
	case "", "table":
		return formatter.NewTableFormatter(), nil
	case "json":
		return formatter.NewJSONFormatter(), nil
	case "csv":
		return formatter.NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", a.config.OutputFormat)
	}
}
