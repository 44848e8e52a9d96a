package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
	"github.com/Damatnic/astral-turf-helpcenter/internal/index"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/logger"
)

// Engine executes search requests against the store and index. It performs
// no side effects; recording the search analytics event is the caller's
// responsibility so that cached executions still produce one event per
// call.
type Engine struct {
	store  *docstore.Store
	index  *index.Inverted
	logger *slog.Logger
}

// New creates an Engine over the given store and index.
func New(store *docstore.Store, inverted *index.Inverted) *Engine {
	return &Engine{
		store:  store,
		index:  inverted,
		logger: logger.WithComponent("search-engine"),
	}
}

// Execute answers one search request: candidate generation from the index
// (OR across query words), filtering to published documents and the
// request's filters, scoring, sorting, and offset/limit pagination. The
// full filtered set is sorted before the slice is taken, so consecutive
// pages concatenate to the unpaginated ordering.
func (e *Engine) Execute(ctx context.Context, req Request) Result {
	log := logger.FromContext(ctx)

	queryWords := index.TokenizeUnique(req.Query)

	var candidates []docstore.Document
	if strings.TrimSpace(req.Query) == "" {
		candidates = e.store.All()
	} else {
		ids := e.index.Candidates(queryWords)
		ordered := make([]string, 0, len(ids))
		for id := range ids {
			ordered = append(ordered, id)
		}
		sort.Strings(ordered)
		candidates = e.store.GetMany(ordered)
	}

	items := make([]Item, 0, len(candidates))
	for _, doc := range candidates {
		if !matchesFilters(doc, req) {
			continue
		}
		s, matched := score(doc, queryWords)
		items = append(items, Item{
			Document:     doc,
			Score:        s,
			Excerpt:      excerpt(doc.Content, queryWords),
			MatchedTerms: matched,
		})
	}

	sortItems(items, req.SortBy, req.SortOrder)

	total := len(items)
	items = paginate(items, req.Offset, req.Limit)

	log.Debug("search executed",
		"query", req.Query,
		"candidates", len(candidates),
		"total", total,
		"returned", len(items),
	)

	return Result{
		Query:  req.Query,
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
		Items:  items,
	}
}

// matchesFilters applies the status restriction and the three optional OR
// filters. Only published documents ever pass.
func matchesFilters(doc docstore.Document, req Request) bool {
	if doc.Status != docstore.StatusPublished {
		return false
	}
	if len(req.Categories) > 0 && !containsCategory(req.Categories, doc.Category) {
		return false
	}
	if len(req.Tags) > 0 && !intersects(doc.Tags, req.Tags) {
		return false
	}
	if len(req.Difficulties) > 0 && !containsDifficulty(req.Difficulties, doc.Difficulty) {
		return false
	}
	return true
}

// sortItems orders by the requested key with descending as the natural
// sense. Relevance breaks ties for the other keys, and document ID makes
// the ordering total.
func sortItems(items []Item, by SortBy, order SortOrder) {
	less := func(a, b Item) bool {
		var primary int
		switch by {
		case SortDate:
			switch {
			case a.Document.LastUpdated.After(b.Document.LastUpdated):
				primary = -1
			case b.Document.LastUpdated.After(a.Document.LastUpdated):
				primary = 1
			}
		case SortPopularity:
			primary = compareFloat(a.Document.Popularity, b.Document.Popularity)
		case SortRating:
			primary = compareFloat(a.Document.Rating, b.Document.Rating)
		default: // relevance
			primary = compareFloat(a.Score, b.Score)
		}
		if primary != 0 {
			return primary < 0
		}
		if tie := compareFloat(a.Score, b.Score); tie != 0 {
			return tie < 0
		}
		return a.Document.ID < b.Document.ID
	}

	sort.SliceStable(items, func(i, j int) bool {
		if order == OrderAsc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

// compareFloat returns -1 when a should sort before b descending.
func compareFloat(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

// paginate slices [offset, offset+limit) out of the sorted set. A negative
// limit means no cap.
func paginate(items []Item, offset, limit int) []Item {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []Item{}
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func containsCategory(set []docstore.Category, c docstore.Category) bool {
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}

func containsDifficulty(set []docstore.Difficulty, d docstore.Difficulty) bool {
	for _, v := range set {
		if v == d {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
