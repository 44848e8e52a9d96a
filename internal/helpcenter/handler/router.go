package handler

import (
	"net/http"
	"time"

	"github.com/Damatnic/astral-turf-helpcenter/pkg/health"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/metrics"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/middleware"
)

// NewRouter assembles the full HTTP surface with the standard middleware
// chain. m may be nil, in which case the metrics middleware is skipped.
func NewRouter(h *Handler, checker *health.Checker, m *metrics.Metrics, requestTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/search", h.Search)

	mux.HandleFunc("GET /api/v1/documents/popular", h.Popular)
	mux.HandleFunc("GET /api/v1/documents/recent", h.Recent)
	mux.HandleFunc("GET /api/v1/documents/{id}", h.GetDocument)
	mux.HandleFunc("PATCH /api/v1/documents/{id}", h.UpdateDocument)
	mux.HandleFunc("GET /api/v1/documents/{id}/versions", h.VersionHistory)
	mux.HandleFunc("GET /api/v1/documents/{id}/versions/{label}", h.DocumentVersion)
	mux.HandleFunc("GET /api/v1/documents/{id}/related", h.Related)
	mux.HandleFunc("POST /api/v1/documents/{id}/helpful", h.MarkHelpful)
	mux.HandleFunc("POST /api/v1/documents/{id}/bookmark", h.Bookmark)

	mux.HandleFunc("GET /api/v1/bookmarks", h.Bookmarks)
	mux.HandleFunc("GET /api/v1/categories", h.Categories)

	mux.HandleFunc("GET /api/v1/analytics", h.Analytics)
	mux.HandleFunc("GET /api/v1/analytics/stats", h.AnalyticsStats)
	mux.HandleFunc("GET /api/v1/export/{format}", h.Export)

	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.InvalidateCache)

	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var handler http.Handler = mux
	handler = middleware.Timeout(requestTimeout)(handler)
	if m != nil {
		handler = middleware.Metrics(m)(handler)
	}
	handler = middleware.CORS(middleware.DefaultCORSConfig())(handler)
	handler = middleware.RequestID(handler)
	return handler
}
