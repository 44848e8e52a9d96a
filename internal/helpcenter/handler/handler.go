// Package handler exposes the help-center service over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Damatnic/astral-turf-helpcenter/internal/helpcenter"
	"github.com/Damatnic/astral-turf-helpcenter/internal/helpcenter/validate"
	apperrors "github.com/Damatnic/astral-turf-helpcenter/pkg/errors"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/logger"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/middleware"
)

// Config bounds search pagination at the HTTP boundary.
type Config struct {
	DefaultLimit int
	MaxResults   int
}

// Handler holds the service and serves the /api/v1 surface.
type Handler struct {
	svc    *helpcenter.Service
	cfg    Config
	logger *slog.Logger
}

// New creates a Handler. Zero Config fields fall back to a default page size
// of 20 and a cap of 100 results per request.
func New(svc *helpcenter.Service, cfg Config) *Handler {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 100
	}
	return &Handler{
		svc:    svc,
		cfg:    cfg,
		logger: logger.WithComponent("http-handler"),
	}
}

type errorResponse struct {
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response encoding failed", "error", err)
	}
}

// writeError renders an error from pkg/errors: the status comes from
// HTTPStatusCode, the message from the AppError when the chain carries one
// and from the error text otherwise.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	h.writeJSON(w, apperrors.HTTPStatusCode(err), errorResponse{
		Error:     message,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

func (h *Handler) writeValidationError(w http.ResponseWriter, r *http.Request, verr *validate.ValidationError) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:     "validation failed",
		Fields:    verr.Fields,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
