package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
	"github.com/Damatnic/astral-turf-helpcenter/internal/helpcenter/validate"
	apperrors "github.com/Damatnic/astral-turf-helpcenter/pkg/errors"
)

const defaultRelatedLimit = 5

// GetDocument handles GET /api/v1/documents/{id}. Fetching a document
// counts as a view.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, ok := h.svc.GetDocument(id)
	if !ok {
		h.writeError(w, r, apperrors.ErrDocumentNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, doc)
}

// documentUpdateRequest is the PATCH body. Absent fields leave the document
// untouched; version metadata applies only when content changes.
type documentUpdateRequest struct {
	Title             *string              `json:"title"`
	Content           *string              `json:"content"`
	Category          *docstore.Category   `json:"category"`
	Tags              *[]string            `json:"tags"`
	Status            *docstore.Status     `json:"status"`
	Difficulty        *docstore.Difficulty `json:"difficulty"`
	Popularity        *float64             `json:"popularity"`
	Rating            *float64             `json:"rating"`
	EstimatedReadTime *int                 `json:"estimatedReadTime"`
	SearchTerms       *[]string            `json:"searchTerms"`
	RelatedDocs       *[]string            `json:"relatedDocs"`

	VersionLabel   string   `json:"versionLabel"`
	VersionAuthor  string   `json:"versionAuthor"`
	VersionChanges []string `json:"versionChanges"`
}

func (req documentUpdateRequest) toUpdate() docstore.DocumentUpdate {
	return docstore.DocumentUpdate{
		Title:             req.Title,
		Content:           req.Content,
		Category:          req.Category,
		Tags:              req.Tags,
		Status:            req.Status,
		Difficulty:        req.Difficulty,
		Popularity:        req.Popularity,
		Rating:            req.Rating,
		EstimatedReadTime: req.EstimatedReadTime,
		SearchTerms:       req.SearchTerms,
		RelatedDocs:       req.RelatedDocs,
		VersionLabel:      req.VersionLabel,
		VersionAuthor:     req.VersionAuthor,
		VersionChanges:    req.VersionChanges,
	}
}

// UpdateDocument handles PATCH /api/v1/documents/{id}.
func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body documentUpdateRequest
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, r, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "invalid request body: %v", err))
		return
	}

	upd := body.toUpdate()
	if err := validate.DocumentUpdate(upd); err != nil {
		var verr *validate.ValidationError
		if errors.As(err, &verr) {
			h.writeValidationError(w, r, verr)
			return
		}
		h.writeError(w, r, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, err.Error()))
		return
	}

	if !h.svc.UpdateDocument(r.Context(), id, upd) {
		h.writeError(w, r, apperrors.ErrDocumentNotFound)
		return
	}

	// Peek to echo the updated document without bumping the view counter.
	docs := h.svc.GetDocuments([]string{id})
	if len(docs) != 1 {
		h.writeError(w, r, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "document lookup failed after update"))
		return
	}
	h.writeJSON(w, http.StatusOK, docs[0])
}

// VersionHistory handles GET /api/v1/documents/{id}/versions.
func (h *Handler) VersionHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if len(h.svc.GetDocuments([]string{id})) == 0 {
		h.writeError(w, r, apperrors.ErrDocumentNotFound)
		return
	}
	versions := h.svc.VersionHistory(id)
	if versions == nil {
		versions = []docstore.Version{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"documentId": id,
		"versions":   versions,
	})
}

// DocumentVersion handles GET /api/v1/documents/{id}/versions/{label}.
func (h *Handler) DocumentVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	label := r.PathValue("label")
	doc, ok := h.svc.DocumentVersion(id, label)
	if !ok {
		h.writeError(w, r, apperrors.ErrVersionNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, doc)
}

// Related handles GET /api/v1/documents/{id}/related.
func (h *Handler) Related(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if len(h.svc.GetDocuments([]string{id})) == 0 {
		h.writeError(w, r, apperrors.ErrDocumentNotFound)
		return
	}
	limit, err := intParam(r.URL.Query().Get("limit"), defaultRelatedLimit)
	if err != nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "limit must be an integer"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"documentId": id,
		"related":    h.svc.Related(id, limit),
	})
}

// MarkHelpful handles POST /api/v1/documents/{id}/helpful.
func (h *Handler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Helpful *bool `json:"helpful"`
	}
	if err := decodeBody(r, &body); err != nil && err != io.EOF {
		h.writeError(w, r, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "invalid request body: %v", err))
		return
	}
	helpful := true
	if body.Helpful != nil {
		helpful = *body.Helpful
	}

	if !h.svc.MarkHelpful(id, helpful) {
		h.writeError(w, r, apperrors.ErrDocumentNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"documentId": id,
		"helpful":    helpful,
	})
}

// Bookmark handles POST /api/v1/documents/{id}/bookmark. Bookmarking is
// idempotent and there is no unbookmark.
func (h *Handler) Bookmark(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.svc.Bookmark(id) {
		h.writeError(w, r, apperrors.ErrDocumentNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"documentId": id,
		"bookmarked": true,
	})
}

// Bookmarks handles GET /api/v1/bookmarks.
func (h *Handler) Bookmarks(w http.ResponseWriter, r *http.Request) {
	docs := h.svc.Bookmarks()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"total":     len(docs),
		"documents": docs,
	})
}
