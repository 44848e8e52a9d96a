package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
	"github.com/Damatnic/astral-turf-helpcenter/internal/helpcenter/validate"
	"github.com/Damatnic/astral-turf-helpcenter/internal/search"
	apperrors "github.com/Damatnic/astral-turf-helpcenter/pkg/errors"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/middleware"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/tracing"
)

// Search handles GET /api/v1/search.
//
// Query parameters: q, category, tag, difficulty (each repeatable or
// comma-separated), limit, offset, sortBy, sortOrder.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseSearchRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := validate.SearchRequest(req); err != nil {
		var verr *validate.ValidationError
		if errors.As(err, &verr) {
			h.writeValidationError(w, r, verr)
			return
		}
		h.writeError(w, r, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, err.Error()))
		return
	}

	ctx, span := tracing.StartSpan(r.Context(), "search", middleware.GetRequestID(r.Context()))
	span.SetAttr("query", req.Query)
	defer func() {
		span.End()
		span.Log()
	}()

	result, cacheHit, err := h.svc.Search(ctx, req)
	if err != nil {
		h.logger.Error("search failed", "query", req.Query, "error", err)
		h.writeError(w, r, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "search failed"))
		return
	}
	span.SetAttr("total", result.Total)
	span.SetAttr("cache_hit", cacheHit)

	if cacheHit {
		w.Header().Set("X-Cache", "HIT")
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) parseSearchRequest(r *http.Request) (search.Request, error) {
	q := r.URL.Query()
	req := search.Request{
		Query:     q.Get("q"),
		SortBy:    search.SortBy(q.Get("sortBy")),
		SortOrder: search.SortOrder(q.Get("sortOrder")),
	}

	for _, v := range splitParam(q["category"]) {
		req.Categories = append(req.Categories, docstore.Category(v))
	}
	req.Tags = splitParam(q["tag"])
	for _, v := range splitParam(q["difficulty"]) {
		req.Difficulties = append(req.Difficulties, docstore.Difficulty(v))
	}

	var err error
	if req.Limit, err = intParam(q.Get("limit"), h.cfg.DefaultLimit); err != nil {
		return req, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "limit must be an integer")
	}
	if req.Limit > h.cfg.MaxResults {
		req.Limit = h.cfg.MaxResults
	}
	if req.Offset, err = intParam(q.Get("offset"), 0); err != nil {
		return req, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "offset must be an integer")
	}
	return req, nil
}

// splitParam flattens repeated query parameters and comma-separated lists
// into one slice, dropping empty entries.
func splitParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
