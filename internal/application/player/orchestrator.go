package player

import (
	"context"
	"fmt"
	"sort"
	"time"

	"captionscroll/internal/core/cache"
	"captionscroll/internal/core/constants"
	"captionscroll/internal/core/framehealth"
	"captionscroll/internal/core/geometry"
	"captionscroll/internal/core/model"
	"captionscroll/internal/core/playback"
	"captionscroll/internal/core/timemap"
	"captionscroll/internal/data/transcript"
	"captionscroll/internal/metrics"
	"captionscroll/internal/presentation/display"
	"captionscroll/internal/presentation/interaction"
	"captionscroll/internal/presentation/layout"
	"captionscroll/internal/server"
	"captionscroll/internal/util"
)

// Orchestrator coordinates all components for the play command
type Orchestrator struct {
	config *Config

	// Core components
	driver       *SyncDriver
	monitor      *framehealth.Monitor
	clock        *playback.Clock
	stateManager *StateManager

	// UI components
	display  *display.TerminalDisplay
	keyboard *interaction.KeyboardReader
	sizer    layout.Sizer

	// Collaborators
	watcher   *transcript.Watcher
	debug     *server.DebugServer
	flowCache *cache.FlowCache

	// Last measured terminal size, for resize detection
	lastCols int
	lastRows int
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *Config) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	monitor := framehealth.NewMonitor(config.TargetFPS)

	o := &Orchestrator{
		config:       config,
		monitor:      monitor,
		driver:       NewSyncDriver(monitor),
		stateManager: NewStateManager(),
		flowCache:    cache.NewFlowCache(8),
		// The clock lives as long as the orchestrator and is mutated in
		// place on reload, so goroutines reading it never observe a swap.
		clock: playback.NewClock(0, config.Rate),
		display: display.NewTerminalDisplay(&display.DisplayConfig{
			Title:      config.Title,
			ShowColors: config.ShowColors,
		}),
	}

	if config.MetricsListen != "" {
		o.debug = server.NewDebugServer(config.MetricsListen, o)
	}

	return o, nil
}

// Run starts the orchestrator main loop
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting captionscroll player...")
	defer o.Close()

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	o.stateManager.SetLoadingState(true, "Loading transcript...")

	if err := o.loadContent(); err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}
	o.stateManager.SetLoadingState(false, "")

	if o.config.Autoplay {
		o.clock.Start(time.Now())
	}

	if o.config.Watch {
		watcher, err := transcript.NewWatcher(o.config.TranscriptPath)
		if err != nil {
			return fmt.Errorf("failed to watch transcript: %w", err)
		}
		o.watcher = watcher
	}

	if o.debug != nil {
		o.debug.Start()
	}

	frameTicker := time.NewTicker(time.Second / time.Duration(o.config.TargetFPS))
	defer frameTicker.Stop()

	diagTicker := time.NewTicker(constants.DiagnosticsInterval)
	defer diagTicker.Stop()

	resizeTicker := time.NewTicker(500 * time.Millisecond)
	defer resizeTicker.Stop()

	watchEvents := o.watchEvents()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down captionscroll player...")
			return nil

		case now := <-frameTicker.C:
			o.stepFrame(now)

		case <-diagTicker.C:
			o.sampleDiagnostics()

		case <-resizeTicker.C:
			o.checkResize()

		case <-watchEvents:
			o.reloadContent()

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(keyEvent) {
				return nil
			}
		}
	}
}

// watchEvents returns the watcher channel or a nil channel when not
// watching, so the select stays uniform.
func (o *Orchestrator) watchEvents() <-chan struct{} {
	if o.watcher == nil {
		return nil
	}
	return o.watcher.Events()
}

// stepFrame is the per-frame path: clock read, interval lookup,
// interpolation, offset publish, render. Nothing here blocks.
func (o *Orchestrator) stepFrame(now time.Time) {
	pos := o.clock.PositionMs(now)
	offset, janked := o.driver.Step(pos, now)

	metrics.FramesTotal.Inc()
	if janked {
		metrics.JankedFramesTotal.Inc()
	}

	content := o.stateManager.GetContent()
	isLoading, _ := o.stateManager.GetLoadingState()
	state := o.stateManager.GetInteractionState()

	frame := &display.Frame{
		Viewport:   o.driver.Viewport(),
		Offset:     offset,
		PositionMs: pos,
		DurationMs: o.clock.DurationMs(),
		Paused:     o.clock.Paused(),
		Loading:    isLoading,
		ShowDebug:  state.ShowDebug,
		Diag:       o.driver.Diagnostics(),
		Health:     o.monitor.Snapshot(),
		CurrentSeg: o.currentSegment(pos),
	}
	if content != nil {
		frame.Lines = content.Lines
	}

	o.display.Render(frame)
}

// currentSegment maps the playback position to the segment index being
// read. It searches the layout samples, not the mounted map: sample i
// anchors segment i, while the map may be shorter after dropping samples
// with non-increasing times.
func (o *Orchestrator) currentSegment(pos int64) int {
	content := o.stateManager.GetContent()
	if content == nil || len(content.Samples) == 0 {
		return 0
	}
	idx := sort.Search(len(content.Samples), func(i int) bool {
		return content.Samples[i].TimeMs > pos
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return idx
}

// sampleDiagnostics publishes the lower-rate observability snapshot. The
// values come from the same resolution the driver applied, never a
// recomputation.
func (o *Orchestrator) sampleDiagnostics() {
	diag := o.driver.Diagnostics()
	health := o.monitor.Snapshot()

	metrics.CurrentFPS.Set(float64(health.FPS))
	metrics.ResolvedInterval.Set(float64(diag.Interval))
	metrics.ScrollOffset.Set(diag.Offset)
	if diag.ClampedTop {
		metrics.ClampsTotal.WithLabelValues("top").Inc()
	}
	if diag.ClampedBottom {
		metrics.ClampsTotal.WithLabelValues("bottom").Inc()
	}

	util.LogDebugf("sync: t=%dms interval=%d offset=%.1f fps=%d",
		diag.TimeMs, diag.Interval, diag.Offset, health.FPS)
}

// DiagnosticsJSON implements server.DiagnosticsSource.
func (o *Orchestrator) DiagnosticsJSON() (interface{}, error) {
	return struct {
		Active     bool              `json:"active"`
		Paused     bool              `json:"paused"`
		PositionMs int64             `json:"positionMs"`
		Diag       model.Diagnostics `json:"diagnostics"`
		Health     framehealth.Stats `json:"frameHealth"`
	}{
		Active:     o.driver.Active(),
		Paused:     o.clock.Paused(),
		PositionMs: o.clock.PositionMs(time.Now()),
		Diag:       o.driver.Diagnostics(),
		Health:     o.monitor.Snapshot(),
	}, nil
}

// loadContent parses the transcript, flows it into the current viewport,
// and mounts the resulting map on the driver.
func (o *Orchestrator) loadContent() error {
	doc, err := transcript.ParseFile(o.config.TranscriptPath)
	if err != nil {
		return err
	}

	cols, rows := o.sizer.TerminalSize()
	o.lastCols, o.lastRows = cols, rows

	// Cached flows describe the previous content.
	o.flowCache.Clear()

	vp := o.buildViewport(cols, rows, 0)
	flow := transcript.Flow(doc, vp)
	o.flowCache.Set(vp.WidthCols, flow)
	vp.ContentHeightPx = flow.ContentHeight

	o.stateManager.SetContent(&sessionContent{
		Transcript: doc,
		Lines:      flow.Lines,
		Samples:    flow.Samples,
	})
	o.driver.Mount(timemap.New(flow.Samples), vp)

	// The clock belongs to the audio side, not to the content: reloads
	// keep the playback position and only track the new duration.
	o.clock.SetDuration(doc.DurationMs)

	util.LogInfof("Loaded transcript %s: %d segments, %d lines",
		o.config.TranscriptPath, len(doc.Segments), len(flow.Lines))
	return nil
}

// reloadContent rebuilds everything after the transcript changed on disk.
// The driver passes through INACTIVE while the new map is built.
func (o *Orchestrator) reloadContent() {
	o.stateManager.SetLoadingState(true, "Reloading transcript...")
	o.driver.Unmount()

	if err := o.loadContent(); err != nil {
		util.LogErrorf("Failed to reload transcript: %v", err)
	} else {
		metrics.ContentReloadsTotal.Inc()
	}
	o.stateManager.SetLoadingState(false, "")
	o.display.ClearScreen()
}

// checkResize re-measures the terminal; a width change re-flows the
// content, a height-only change just updates the geometry.
func (o *Orchestrator) checkResize() {
	cols, rows := o.sizer.TerminalSize()
	if cols == o.lastCols && rows == o.lastRows {
		return
	}

	util.LogInfof("Terminal resized %dx%d -> %dx%d", o.lastCols, o.lastRows, cols, rows)
	widthChanged := cols != o.lastCols
	o.lastCols, o.lastRows = cols, rows

	content := o.stateManager.GetContent()
	if content == nil {
		return
	}

	if widthChanged {
		vp := o.buildViewport(cols, rows, 0)
		flow, ok := o.flowCache.Get(vp.WidthCols)
		if !ok {
			flow = transcript.Flow(content.Transcript, vp)
			o.flowCache.Set(vp.WidthCols, flow)
		}
		vp.ContentHeightPx = flow.ContentHeight

		o.stateManager.SetContent(&sessionContent{
			Transcript: content.Transcript,
			Lines:      flow.Lines,
			Samples:    flow.Samples,
		})
		o.driver.Mount(timemap.New(flow.Samples), vp)
	} else {
		vp := o.driver.Viewport()
		updated := o.buildViewport(cols, rows, vp.ContentHeightPx)
		o.driver.SetViewport(updated)
	}
	o.display.ClearScreen()
}

// buildViewport derives scroll geometry from the terminal size. Paddings
// default to the amount that lets the first and last rows reach the
// center of the viewport.
func (o *Orchestrator) buildViewport(cols, rows int, contentHeight float64) geometry.Viewport {
	lh := o.config.LineHeightPx
	contentRows := rows - 2 // header and separator
	if contentRows < 1 {
		contentRows = 1
	}
	vh := float64(contentRows) * lh

	topPad := o.config.TopPaddingPx
	bottomPad := o.config.BottomPaddingPx
	centerPad := vh/2 - lh/2
	if topPad < 0 {
		topPad = centerPad
	}
	if bottomPad < 0 {
		bottomPad = centerPad
	}

	return geometry.Viewport{
		WidthCols:       o.sizer.WrapWidth(cols),
		HeightPx:        vh,
		ContentHeightPx: contentHeight,
		TopPaddingPx:    topPad,
		BottomPaddingPx: bottomPad,
		LineHeightPx:    lh,
	}
}

// handleKeyboard handles keyboard events; returns true to exit
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	now := time.Now()

	switch event.Type {
	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q', 3: // 'q', 'Q', or Ctrl+C
			return true
		case ' ':
			paused := o.clock.Toggle(now)
			util.LogDebugf("Playback %s at %dms", pausedWord(paused), o.clock.PositionMs(now))
		case 'd', 'D':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ShowDebug = !s.ShowDebug
			})
			o.display.ClearScreen()
		case 'r', 'R':
			o.reloadContent()
		case '0':
			o.clock.SeekTo(now, 0)
		}
	case interaction.KeyLeft:
		o.clock.SeekBy(now, -constants.SeekStepMs)
	case interaction.KeyRight:
		o.clock.SeekBy(now, constants.SeekStepMs)
	case interaction.KeyEscape:
		return true
	}
	return false
}

func pausedWord(paused bool) string {
	if paused {
		return "paused"
	}
	return "resumed"
}

// Close releases collaborators in reverse start order.
func (o *Orchestrator) Close() {
	if o.debug != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		o.debug.Stop(ctx)
	}
	if o.watcher != nil {
		o.watcher.Close()
	}
	if o.keyboard != nil {
		o.keyboard.Close()
	}
	o.driver.Unmount()
}
