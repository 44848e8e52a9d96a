package handler

import (
	"net/http"

	apperrors "github.com/Damatnic/astral-turf-helpcenter/pkg/errors"
)

const defaultListLimit = 10

// Popular handles GET /api/v1/documents/popular.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("limit"), defaultListLimit)
	if err != nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "limit must be an integer"))
		return
	}
	docs := h.svc.Popular(limit)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"total":     len(docs),
		"documents": docs,
	})
}

// Recent handles GET /api/v1/documents/recent.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("limit"), defaultListLimit)
	if err != nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "limit must be an integer"))
		return
	}
	docs := h.svc.Recent(limit)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"total":     len(docs),
		"documents": docs,
	})
}

// Categories handles GET /api/v1/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"categories": h.svc.Categories(),
	})
}
