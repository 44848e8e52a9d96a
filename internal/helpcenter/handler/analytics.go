package handler

import (
	"net/http"
	"time"

	"github.com/Damatnic/astral-turf-helpcenter/internal/analytics"
	apperrors "github.com/Damatnic/astral-turf-helpcenter/pkg/errors"
)

// Analytics handles GET /api/v1/analytics.
//
// Query parameters: docId, event, from, to. Time bounds are RFC 3339 and
// inclusive on both ends.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := analytics.Filter{
		DocumentID: q.Get("docId"),
		Kind:       analytics.Kind(q.Get("event")),
	}

	var err error
	if filter.From, err = timeParam(q.Get("from")); err != nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "from must be an RFC 3339 timestamp"))
		return
	}
	if filter.To, err = timeParam(q.Get("to")); err != nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "to must be an RFC 3339 timestamp"))
		return
	}

	events := h.svc.Analytics(filter)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"total":  len(events),
		"events": events,
	})
}

// AnalyticsStats handles GET /api/v1/analytics/stats.
func (h *Handler) AnalyticsStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.AnalyticsStats())
}

// Export handles GET /api/v1/export/{format}. Supported formats: json,
// markdown.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	switch format {
	case "json":
		data, err := h.svc.ExportJSON()
		if err != nil {
			h.logger.Error("export failed", "format", format, "error", err)
			h.writeError(w, r, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "export failed"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="helpcenter-export.json"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="helpcenter-export.md"`)
		w.WriteHeader(http.StatusOK)
		w.Write(h.svc.ExportMarkdown())
	default:
		h.writeError(w, r, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "unsupported export format %q", format))
	}
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	hits, misses, ok := h.svc.CacheStats()
	if !ok {
		h.writeError(w, r, apperrors.ErrCacheDisabled)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":   hits,
		"misses": misses,
	})
}

// InvalidateCache handles POST /api/v1/cache/invalidate.
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.InvalidateCache(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, r, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "cache invalidation failed"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"invalidated": true})
}

func timeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
