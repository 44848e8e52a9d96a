// Package search answers ranked, filtered, paginated queries over the
// document store using the inverted index for candidate generation.
package search

import (
	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
)

// SortBy selects the primary sort key of a result set.
type SortBy string

const (
	SortRelevance  SortBy = "relevance"
	SortDate       SortBy = "date"
	SortPopularity SortBy = "popularity"
	SortRating     SortBy = "rating"
)

// SortOrder selects the direction of the sort. Descending is the natural
// sense of every comparator; ascending inverts it.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ValidSortBy reports whether s is a known sort key.
func ValidSortBy(s SortBy) bool {
	switch s {
	case SortRelevance, SortDate, SortPopularity, SortRating:
		return true
	}
	return false
}

// ValidSortOrder reports whether s is a known sort order.
func ValidSortOrder(s SortOrder) bool {
	return s == OrderAsc || s == OrderDesc
}

// Request describes one search call. All filters are optional; an omitted
// filter imposes no restriction. Within a field the filter is an OR;
// across fields the filters are ANDed.
type Request struct {
	Query        string                `json:"query"`
	Categories   []docstore.Category   `json:"categories,omitempty"`
	Tags         []string              `json:"tags,omitempty"`
	Difficulties []docstore.Difficulty `json:"difficulties,omitempty"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
	SortBy       SortBy                `json:"sortBy,omitempty"`
	SortOrder    SortOrder             `json:"sortOrder,omitempty"`
}

// Item is one ranked search hit.
type Item struct {
	Document     docstore.Document `json:"document"`
	Score        float64           `json:"score"`
	Excerpt      string            `json:"excerpt"`
	MatchedTerms []string          `json:"matchedTerms"`
}

// Result is the paginated outcome of a search call. Total counts the whole
// filtered set before the offset/limit slice was applied.
type Result struct {
	Query  string `json:"query"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Items  []Item `json:"items"`
}
