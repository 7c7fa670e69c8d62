package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"captionscroll/internal/application/player"
	"captionscroll/internal/util"
)

var (
	// Playback related flags
	playRate     float64
	playAutoplay bool

	// Frame and layout flags
	playFPS           int
	playLineHeight    float64
	playTopPadding    float64
	playBottomPadding float64

	// Display flags
	playNoColor bool

	// Observability flags
	playMetricsListen string

	// Live reload flags
	playWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play [transcript.json]",
	Short: "Play a transcript with time-synchronized scrolling",
	Long: `Plays a transcript in the terminal: caption text scrolls continuously so
the row being spoken stays centered, driven by a playback clock at the
target frame rate.

Keys:
  space      pause / resume
  left/right seek 5 seconds
  0          seek to start
  d          toggle the sync debug overlay
  r          reload the transcript
  q          quit`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	// Playback flags
	playCmd.Flags().Float64Var(&playRate, "rate", 1.0,
		"Playback speed multiplier")
	playCmd.Flags().BoolVar(&playAutoplay, "autoplay", true,
		"Start playing immediately")

	// Frame and layout flags
	playCmd.Flags().IntVar(&playFPS, "fps", 60,
		"Target frame rate (1-240)")
	playCmd.Flags().Float64Var(&playLineHeight, "line-height", 24,
		"Line height in pixels")
	playCmd.Flags().Float64Var(&playTopPadding, "top-padding", -1,
		"Top padding in pixels (-1 centers the first row)")
	playCmd.Flags().Float64Var(&playBottomPadding, "bottom-padding", -1,
		"Bottom padding in pixels (-1 centers the last row)")

	// Display flags
	playCmd.Flags().BoolVar(&playNoColor, "no-color", false,
		"Disable colored output")

	// Observability flags
	playCmd.Flags().StringVar(&playMetricsListen, "metrics-listen", "",
		"Address for the debug HTTP server, e.g. 127.0.0.1:9641 (disabled when empty)")

	// Live reload flags
	playCmd.Flags().BoolVar(&playWatch, "watch", true,
		"Reload when the transcript changes on disk")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	// The player owns the terminal, so logs go to the file only.
	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, false)

	config := &player.Config{
		TranscriptPath:  args[0],
		Title:           filepath.Base(args[0]),
		Rate:            playRate,
		Autoplay:        playAutoplay,
		TargetFPS:       playFPS,
		LineHeightPx:    playLineHeight,
		TopPaddingPx:    playTopPadding,
		BottomPaddingPx: playBottomPadding,
		ShowColors:      !playNoColor,
		MetricsListen:   playMetricsListen,
		Watch:           playWatch,
	}

	orchestrator, err := player.NewOrchestrator(config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return orchestrator.Run(ctx)
}
