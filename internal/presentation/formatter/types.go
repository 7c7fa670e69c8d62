package formatter

// SampleRow is one row of the inspect report: a time/offset sample plus
// the derived per-interval figures a human wants when checking a layout.
type SampleRow struct {
	Index         int     `json:"index"`
	TimeMs        int64   `json:"timeMs"`
	OffsetPx      float64 `json:"offsetPx"`
	IntervalMs    int64   `json:"intervalMs,omitempty"`
	SlopePxPerSec float64 `json:"slopePxPerSec,omitempty"`
	Preview       string  `json:"preview,omitempty"`
}

// Report is the full inspect output.
type Report struct {
	Source        string      `json:"source"`
	Segments      int         `json:"segments"`
	Lines         int         `json:"lines"`
	ContentHeight float64     `json:"contentHeightPx"`
	MaxScroll     float64     `json:"maxScrollOffsetPx"`
	BaseOffset    float64     `json:"baseOffsetPx"`
	DurationMs    int64       `json:"durationMs"`
	Samples       []SampleRow `json:"samples"`
}

// Formatter renders a report to stdout.
type Formatter interface {
	Format(report *Report) error
}
