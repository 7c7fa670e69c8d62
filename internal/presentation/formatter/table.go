package formatter

import (
	"fmt"
	"strings"

	"captionscroll/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{
			"#", "Time", "Offset", "Interval", "Slope (px/s)", "Preview",
		},
	}
}

func (f *TableFormatter) Format(report *Report) error {
	fmt.Printf("Source: %s\n", report.Source)
	fmt.Printf("Segments: %d  Lines: %d  Content: %s  MaxScroll: %s  Base: %s\n\n",
		report.Segments,
		report.Lines,
		util.FormatOffset(report.ContentHeight),
		util.FormatOffset(report.MaxScroll),
		util.FormatOffset(report.BaseOffset))

	widths := f.calculateColumnWidths(report)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")

	for _, row := range report.Samples {
		f.printRow(f.rowValues(row), widths)
	}

	f.printBorder(widths, "bottom")
	fmt.Printf("\nDuration: %s\n", util.FormatClock(report.DurationMs))
	return nil
}

func (f *TableFormatter) rowValues(row SampleRow) []string {
	interval := "-"
	slope := "-"
	if row.IntervalMs > 0 {
		interval = util.FormatClock(row.IntervalMs)
		slope = fmt.Sprintf("%.1f", row.SlopePxPerSec)
	}
	return []string{
		fmt.Sprintf("%d", row.Index),
		util.FormatClock(row.TimeMs),
		util.FormatOffset(row.OffsetPx),
		interval,
		slope,
		row.Preview,
	}
}

// calculateColumnWidths determines optimal width for each column based on content
func (f *TableFormatter) calculateColumnWidths(report *Report) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}

	for _, row := range report.Samples {
		for i, value := range f.rowValues(row) {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right, separator string

	switch borderType {
	case "top":
		left, middle, right, separator = "┌", "┬", "┐", "─"
	case "middle":
		left, middle, right, separator = "├", "┼", "┤", "─"
	case "bottom":
		left, middle, right, separator = "└", "┴", "┘", "─"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat(separator, width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

// printRow prints a data row; numeric columns are right-aligned, the
// preview column left-aligned
func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		pad := widths[i] - util.GetDisplayWidth(value)
		if pad < 0 {
			pad = 0
		}
		if i == len(values)-1 {
			fmt.Printf(" %s%s │", value, strings.Repeat(" ", pad))
		} else {
			fmt.Printf(" %s%s │", strings.Repeat(" ", pad), value)
		}
	}
	fmt.Println()
}
