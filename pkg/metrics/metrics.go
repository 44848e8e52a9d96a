// Package metrics defines the Prometheus metric collectors used across the
// help-center service and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	SearchesTotal        *prometheus.CounterVec
	SearchLatency        *prometheus.HistogramVec
	SearchResultsCount   prometheus.Histogram
	DocumentViewsTotal   prometheus.Counter
	DocumentUpdatesTotal *prometheus.CounterVec
	HelpfulVotesTotal    *prometheus.CounterVec
	BookmarksTotal       prometheus.Counter
	AnalyticsEventsTotal *prometheus.CounterVec
	IndexRebuildsTotal   prometheus.Counter
	IndexRebuildDuration prometheus.Histogram
	IndexTermCount       prometheus.Gauge
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helpcenter_searches_total",
				Help: "Total search calls by result type (hit, zero_result).",
			},
			[]string{"result_type"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "helpcenter_search_latency_seconds",
				Help:    "Search latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
			[]string{"cache_status"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "helpcenter_search_results_count",
				Help:    "Number of results returned per search call.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		DocumentViewsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "helpcenter_document_views_total",
				Help: "Total document view lookups.",
			},
		),
		DocumentUpdatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helpcenter_document_updates_total",
				Help: "Total document updates by outcome (applied, versioned, not_found).",
			},
			[]string{"outcome"},
		),
		HelpfulVotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helpcenter_helpful_votes_total",
				Help: "Total helpfulness votes by value.",
			},
			[]string{"helpful"},
		),
		BookmarksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "helpcenter_bookmarks_total",
				Help: "Total bookmark operations.",
			},
		),
		AnalyticsEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helpcenter_analytics_events_total",
				Help: "Total analytics events recorded, by kind.",
			},
			[]string{"kind"},
		),
		IndexRebuildsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "helpcenter_index_rebuilds_total",
				Help: "Total full index rebuilds.",
			},
		),
		IndexRebuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "helpcenter_index_rebuild_duration_seconds",
				Help:    "Duration of full index rebuilds in seconds.",
				Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		IndexTermCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "helpcenter_index_term_count",
				Help: "Number of distinct terms in the inverted index.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "helpcenter_cache_hits_total",
				Help: "Total search cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "helpcenter_cache_misses_total",
				Help: "Total search cache misses.",
			},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.SearchesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.DocumentViewsTotal,
		m.DocumentUpdatesTotal,
		m.HelpfulVotesTotal,
		m.BookmarksTotal,
		m.AnalyticsEventsTotal,
		m.IndexRebuildsTotal,
		m.IndexRebuildDuration,
		m.IndexTermCount,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
