package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Frame health metrics
var (
	FramesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "captionscroll_frames_total",
			Help: "Total number of rendered frames",
		},
	)

	JankedFramesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "captionscroll_janked_frames_total",
			Help: "Total number of frames whose arrival gap exceeded the jank threshold",
		},
	)

	CurrentFPS = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "captionscroll_fps",
			Help: "Frames observed in the rolling one-second window",
		},
	)
)

// Sync engine metrics
var (
	ResolvedInterval = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "captionscroll_resolved_interval",
			Help: "Index of the bracketing sample interval resolved on the last diagnostics sample",
		},
	)

	ScrollOffset = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "captionscroll_scroll_offset_px",
			Help: "Scroll offset applied on the last diagnostics sample",
		},
	)

	ClampsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captionscroll_clamps_total",
			Help: "Diagnostics samples whose target offset was clamped to the scroll range",
		},
		[]string{"edge"}, // "top", "bottom"
	)

	ContentReloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "captionscroll_content_reloads_total",
			Help: "Times the transcript was reloaded and the time/offset map rebuilt",
		},
	)
)
