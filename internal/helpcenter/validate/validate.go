// Package validate shapes and checks inputs at the HTTP boundary before
// they reach the core service. The core performs no validation of its own;
// malformed enum values and out-of-range numbers are rejected here with
// per-field error details.
package validate

import (
	"fmt"
	"strings"

	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
	"github.com/Damatnic/astral-turf-helpcenter/internal/search"
)

const (
	maxTitleLength   = 1024
	maxContentLength = 1048576
)

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s:%s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// DocumentUpdate checks the fields of a partial document update.
func DocumentUpdate(upd docstore.DocumentUpdate) error {
	errs := make(map[string]string)

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			errs["title"] = "title must not be empty"
		} else if len(title) > maxTitleLength {
			errs["title"] = fmt.Sprintf("title must be at most %d characters", maxTitleLength)
		}
	}
	if upd.Content != nil && len(*upd.Content) > maxContentLength {
		errs["content"] = fmt.Sprintf("content must be at most %d characters", maxContentLength)
	}
	if upd.Category != nil && !docstore.ValidCategory(*upd.Category) {
		errs["category"] = fmt.Sprintf("unknown category %q", *upd.Category)
	}
	if upd.Status != nil && !docstore.ValidStatus(*upd.Status) {
		errs["status"] = fmt.Sprintf("unknown status %q", *upd.Status)
	}
	if upd.Difficulty != nil && !docstore.ValidDifficulty(*upd.Difficulty) {
		errs["difficulty"] = fmt.Sprintf("unknown difficulty %q", *upd.Difficulty)
	}
	if upd.Popularity != nil && (*upd.Popularity < 0 || *upd.Popularity > 100) {
		errs["popularity"] = "popularity must be between 0 and 100"
	}
	if upd.Rating != nil && (*upd.Rating < 0 || *upd.Rating > 5) {
		errs["rating"] = "rating must be between 0 and 5"
	}
	if upd.EstimatedReadTime != nil && *upd.EstimatedReadTime < 0 {
		errs["estimatedReadTime"] = "estimated read time must not be negative"
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// SearchRequest checks pagination, sort, and filter enum values.
func SearchRequest(req search.Request) error {
	errs := make(map[string]string)

	if req.Limit < 0 {
		errs["limit"] = "limit must not be negative"
	}
	if req.Offset < 0 {
		errs["offset"] = "offset must not be negative"
	}
	if req.SortBy != "" && !search.ValidSortBy(req.SortBy) {
		errs["sortBy"] = fmt.Sprintf("unknown sort key %q", req.SortBy)
	}
	if req.SortOrder != "" && !search.ValidSortOrder(req.SortOrder) {
		errs["sortOrder"] = fmt.Sprintf("unknown sort order %q", req.SortOrder)
	}
	for _, c := range req.Categories {
		if !docstore.ValidCategory(c) {
			errs["categories"] = fmt.Sprintf("unknown category %q", c)
		}
	}
	for _, d := range req.Difficulties {
		if !docstore.ValidDifficulty(d) {
			errs["difficulties"] = fmt.Sprintf("unknown difficulty %q", d)
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
