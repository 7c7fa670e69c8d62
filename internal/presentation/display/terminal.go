package display

import (
	"fmt"
	"math"
	"strings"

	"captionscroll/internal/core/framehealth"
	"captionscroll/internal/core/geometry"
	"captionscroll/internal/core/model"
	"captionscroll/internal/presentation/layout"
	"captionscroll/internal/util"
)

// DisplayConfig holds renderer settings.
type DisplayConfig struct {
	Title      string
	ShowColors bool
}

// Frame is everything the renderer needs to paint one frame. The scroll
// offset arrives already computed; the renderer does no sync math beyond
// mapping the offset to a first visible row.
type Frame struct {
	Lines      []model.Line
	Viewport   geometry.Viewport
	Offset     float64
	PositionMs int64
	DurationMs int64
	Paused     bool
	Loading    bool
	ShowDebug  bool
	Diag       model.Diagnostics
	Health     framehealth.Stats
	CurrentSeg int
}

// TerminalDisplay paints caption frames on the alternate screen buffer,
// redrawing only rows that changed since the previous frame.
type TerminalDisplay struct {
	config            *DisplayConfig
	sizer             layout.Sizer
	inAlternateScreen bool
	previousScreen    []string
	isFirstRender     bool
}

func NewTerminalDisplay(config *DisplayConfig) *TerminalDisplay {
	return &TerminalDisplay{
		config:        config,
		isFirstRender: true,
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Print(util.AltScreenOn)
	fmt.Print(util.HideCursor)
	fmt.Print(util.ClearScreen)
	fmt.Print(util.MoveCursorHome)
	td.inAlternateScreen = true
}

// ExitAlternateScreen restores the normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Print(util.ShowCursor)
	fmt.Print(util.AltScreenOff)
	td.inAlternateScreen = false
}

// ClearScreen clears the alternate screen buffer
func (td *TerminalDisplay) ClearScreen() {
	fmt.Print(util.ClearScreen)
	fmt.Print(util.MoveCursorHome)
	td.previousScreen = nil
	td.isFirstRender = true
}

// Render paints one frame.
func (td *TerminalDisplay) Render(f *Frame) {
	cols, rows := td.sizer.TerminalSize()

	screen := make([]string, 0, rows)
	screen = append(screen, td.headerLine(f, cols))
	screen = append(screen, strings.Repeat("─", cols))

	contentRows := rows - 2
	if f.ShowDebug {
		contentRows -= 3
	}
	if contentRows < 1 {
		contentRows = 1
	}

	screen = append(screen, td.contentLines(f, cols, contentRows)...)

	if f.ShowDebug {
		screen = append(screen, strings.Repeat("─", cols))
		screen = append(screen, td.debugLines(f, cols)...)
	}

	td.flush(screen, rows)
}

func (td *TerminalDisplay) headerLine(f *Frame, cols int) string {
	state := "▶"
	if f.Paused {
		state = "⏸"
	}
	if f.Loading {
		state = "…"
	}

	left := fmt.Sprintf("%s %s", state, td.config.Title)
	right := fmt.Sprintf("%s / %s  %d fps",
		util.FormatClock(f.PositionMs),
		util.FormatClock(f.DurationMs),
		f.Health.FPS)

	gap := cols - util.GetDisplayWidth(left) - util.GetDisplayWidth(right)
	if gap < 1 {
		gap = 1
	}
	return util.TruncateToWidth(left+strings.Repeat(" ", gap)+right, cols)
}

// contentLines maps the scroll offset to a window of wrapped caption rows.
// The virtual strip is topPadding + content + bottomPadding pixels tall;
// the offset selects the strip pixel at the top of the viewport.
func (td *TerminalDisplay) contentLines(f *Frame, cols, contentRows int) []string {
	out := make([]string, 0, contentRows)

	if f.Loading || len(f.Lines) == 0 {
		msg := "Loading transcript..."
		if !f.Loading {
			msg = "(empty transcript)"
		}
		for r := 0; r < contentRows; r++ {
			if r == contentRows/2 {
				pad := (cols - util.GetDisplayWidth(msg)) / 2
				if pad < 0 {
					pad = 0
				}
				out = append(out, strings.Repeat(" ", pad)+msg)
			} else {
				out = append(out, "")
			}
		}
		return out
	}

	lh := f.Viewport.LineHeightPx
	for r := 0; r < contentRows; r++ {
		// Content-space y of this terminal row.
		y := f.Offset + float64(r)*lh - f.Viewport.TopPaddingPx
		idx := int(math.Floor(y / lh))
		if y < 0 || idx < 0 || idx >= len(f.Lines) {
			out = append(out, "")
			continue
		}

		line := f.Lines[idx]
		text := util.TruncateToWidth("  "+line.Text, cols)
		if td.config.ShowColors && line.Segment == f.CurrentSeg {
			text = util.ColorBold + util.ColorCyan + text + util.ColorReset
		} else if td.config.ShowColors {
			text = util.ColorDim + text + util.ColorReset
		}
		out = append(out, text)
	}
	return out
}

func (td *TerminalDisplay) debugLines(f *Frame, cols int) []string {
	d := f.Diag
	clamp := "none"
	if d.ClampedTop {
		clamp = "top"
	} else if d.ClampedBottom {
		clamp = "bottom"
	}

	l1 := fmt.Sprintf("  interval=%d  bracket=[%dms→%dms]  p=%.3f  slope=%.1f px/s",
		d.Interval, d.T0, d.T1, d.Progress, d.SlopePxPerSec)
	l2 := fmt.Sprintf("  yRaw=%s  base=%s  offset=%s  clamp=%s",
		util.FormatOffset(d.YRaw), util.FormatOffset(d.BaseOffset),
		util.FormatOffset(d.Offset), clamp)
	l3 := fmt.Sprintf("  frames=%d  janks=%d  lastGap=%s",
		f.Health.Frames, f.Health.Janks, util.FormatGap(f.Health.LastGap))

	return []string{
		util.TruncateToWidth(l1, cols),
		util.TruncateToWidth(l2, cols),
		util.TruncateToWidth(l3, cols),
	}
}

// flush writes the screen, repainting only rows that differ from the
// previous frame.
func (td *TerminalDisplay) flush(screen []string, rows int) {
	for len(screen) < rows {
		screen = append(screen, "")
	}
	screen = screen[:rows]

	if td.isFirstRender || len(td.previousScreen) != len(screen) {
		fmt.Print(util.ClearScreen)
		fmt.Print(util.MoveCursorHome)
		for i, line := range screen {
			fmt.Printf("\033[%d;1H%s", i+1, line)
		}
		td.isFirstRender = false
	} else {
		for i, line := range screen {
			if line == td.previousScreen[i] {
				continue
			}
			fmt.Printf("\033[%d;1H%s%s", i+1, util.ClearLine, line)
		}
	}

	td.previousScreen = screen
}
