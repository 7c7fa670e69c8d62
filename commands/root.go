package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"captionscroll/internal/analyzer"
	"captionscroll/internal/util"
)

var (
	// Logging related
	debug bool

	// Output related
	outputFormat string

	// Layout related
	inspectWidth         int
	inspectViewportRows  int
	inspectLineHeight    float64
	inspectTopPadding    float64
	inspectBottomPadding float64

	rootCmd = &cobra.Command{
		Use:   "captionscroll [transcript.json]",
		Short: "Time-synchronized caption scrolling for the terminal",
		Long: `captionscroll plays a transcript in the terminal, scrolling caption text
in sync with a media playback clock.

Run without a subcommand it inspects a transcript offline: the content is
wrapped to the configured width and the resulting time/offset sample table
is printed, including per-interval scroll slopes.

Examples:
  captionscroll episode.json                      # Print the sample table
  captionscroll episode.json --output json        # Machine-readable report
  captionscroll play episode.json                 # Play it in real time
  captionscroll play episode.json --rate 1.5      # Play at 1.5x speed`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
)

const defaultLogFile = "~/.captionscroll/logs/app.log"

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv)")
	rootCmd.Flags().IntVar(&inspectWidth, "width", 72,
		"Wrap width in display columns")
	rootCmd.Flags().IntVar(&inspectViewportRows, "viewport-rows", 22,
		"Viewport height in rows for derived geometry")
	rootCmd.Flags().Float64Var(&inspectLineHeight, "line-height", 24,
		"Line height in pixels")
	rootCmd.Flags().Float64Var(&inspectTopPadding, "top-padding", -1,
		"Top padding in pixels (-1 centers the first row)")
	rootCmd.Flags().Float64Var(&inspectBottomPadding, "bottom-padding", -1,
		"Bottom padding in pixels (-1 centers the last row)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)

	config := &analyzer.Config{
		TranscriptPath:  args[0],
		OutputFormat:    outputFormat,
		WidthCols:       inspectWidth,
		ViewportRows:    inspectViewportRows,
		LineHeightPx:    inspectLineHeight,
		TopPaddingPx:    inspectTopPadding,
		BottomPaddingPx: inspectBottomPadding,
	}

	a := analyzer.New(config)
	return a.Run()
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
