package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// SliderSavesTotal counts meta box submissions by outcome: saved, skipped, rejected, failed.
	SliderSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wslider_saves_total",
			Help: "Slider config save attempts by result",
		},
		[]string{"result"},
	)

	UnresolvedRefsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wslider_unresolved_refs_total",
			Help: "Image refs dropped because no asset URL was found",
		},
	)

	ColorSwitchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wslider_color_switches_total",
			Help: "Server-side color preselects by result",
		},
		[]string{"result"},
	)

	AssetCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wslider_asset_cache_lookups_total",
			Help: "Asset URL cache lookups by result",
		},
		[]string{"result"},
	)
)
