package formatter

import (
	"encoding/csv"
	"fmt"
	"os"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(report *Report) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	headers := []string{
		"Index", "Time (ms)", "Offset (px)", "Interval (ms)", "Slope (px/s)", "Preview",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, row := range report.Samples {
		record := []string{
			fmt.Sprintf("%d", row.Index),
			fmt.Sprintf("%d", row.TimeMs),
			fmt.Sprintf("%.1f", row.OffsetPx),
			fmt.Sprintf("%d", row.IntervalMs),
			fmt.Sprintf("%.2f", row.SlopePxPerSec),
			row.Preview,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
