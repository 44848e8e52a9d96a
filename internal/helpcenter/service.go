// Package helpcenter composes the document store, inverted index, search
// engine, analytics recorder, and bookmark set into the service consumed by
// the HTTP layer. Callers construct an instance with seed documents; there
// is no package-level singleton.
package helpcenter

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Damatnic/astral-turf-helpcenter/internal/analytics"
	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
	"github.com/Damatnic/astral-turf-helpcenter/internal/index"
	"github.com/Damatnic/astral-turf-helpcenter/internal/search"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/logger"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/metrics"
)

// SearchCache is the optional result cache in front of the engine.
// *cache.ResultCache satisfies it.
type SearchCache interface {
	GetOrCompute(ctx context.Context, req search.Request, computeFn func() (*search.Result, error)) (*search.Result, bool, error)
	Invalidate(ctx context.Context) error
	Stats() (hits, misses int64)
}

// Service owns all help-center state for the lifetime of the process.
type Service struct {
	store    *docstore.Store
	index    *index.Inverted
	engine   *search.Engine
	recorder *analytics.Recorder
	cache    SearchCache
	metrics  *metrics.Metrics

	bookmarkMu sync.Mutex
	bookmarks  map[string]struct{}

	logger *slog.Logger
}

// New creates a Service seeded with the given documents and builds the
// initial index. searchCache and m may be nil.
func New(seed []docstore.Document, recorder *analytics.Recorder, searchCache SearchCache, m *metrics.Metrics) *Service {
	store := docstore.NewStore(seed)
	inverted := index.New()

	s := &Service{
		store:     store,
		index:     inverted,
		engine:    search.New(store, inverted),
		recorder:  recorder,
		cache:     searchCache,
		metrics:   m,
		bookmarks: make(map[string]struct{}),
		logger:    logger.WithComponent("helpcenter"),
	}
	s.rebuildIndex()
	s.logger.Info("service initialized", "documents", store.Len(), "terms", inverted.TermCount())
	return s
}

// Close releases the service. The in-memory state needs no teardown; the
// method exists so callers hold an explicit lifecycle.
func (s *Service) Close() {
	s.logger.Info("service closed", "documents", s.store.Len(), "events", s.recorder.Len())
}

// Search executes a search request, consulting the result cache when one is
// configured. Every call records exactly one search analytics event,
// whether or not the result came from the cache.
func (s *Service) Search(ctx context.Context, req search.Request) (*search.Result, bool, error) {
	start := time.Now()

	var (
		result   *search.Result
		cacheHit bool
		err      error
	)
	if s.cache != nil {
		result, cacheHit, err = s.cache.GetOrCompute(ctx, req, func() (*search.Result, error) {
			r := s.engine.Execute(ctx, req)
			return &r, nil
		})
		if err != nil {
			return nil, false, err
		}
	} else {
		r := s.engine.Execute(ctx, req)
		result = &r
	}

	s.recorder.Track(analytics.Event{
		Kind: analytics.KindSearch,
		Metadata: map[string]any{
			"query":        req.Query,
			"categories":   req.Categories,
			"tags":         req.Tags,
			"difficulties": req.Difficulties,
			"limit":        req.Limit,
			"offset":       req.Offset,
			"sortBy":       req.SortBy,
			"sortOrder":    req.SortOrder,
			"total":        result.Total,
		},
	})

	if s.metrics != nil {
		resultType := "hit"
		if result.Total == 0 {
			resultType = "zero_result"
		}
		cacheStatus := "miss"
		if cacheHit {
			cacheStatus = "hit"
		}
		if s.cache != nil {
			if cacheHit {
				s.metrics.CacheHitsTotal.Inc()
			} else {
				s.metrics.CacheMissesTotal.Inc()
			}
		}
		s.metrics.SearchesTotal.WithLabelValues(resultType).Inc()
		s.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(time.Since(start).Seconds())
		s.metrics.SearchResultsCount.Observe(float64(len(result.Items)))
		s.metrics.AnalyticsEventsTotal.WithLabelValues(string(analytics.KindSearch)).Inc()
	}

	return result, cacheHit, nil
}

// GetDocument returns the document and records the view: the view counter
// and last-viewed timestamp advance on every call, so this lookup is
// deliberately not idempotent.
func (s *Service) GetDocument(id string) (docstore.Document, bool) {
	doc, ok := s.store.Get(id)
	if !ok {
		return docstore.Document{}, false
	}
	s.recorder.Track(analytics.Event{
		DocumentID: id,
		Kind:       analytics.KindView,
	})
	if s.metrics != nil {
		s.metrics.DocumentViewsTotal.Inc()
		s.metrics.AnalyticsEventsTotal.WithLabelValues(string(analytics.KindView)).Inc()
	}
	return doc, true
}

// GetDocuments returns the subset of ids found, silently dropping unknown
// ids. View counters are not touched.
func (s *Service) GetDocuments(ids []string) []docstore.Document {
	return s.store.GetMany(ids)
}

// UpdateDocument merges partial fields into the document. A content change
// appends a version; any indexed-field change rebuilds the index. Every
// successful update invalidates the search cache, because cached results can
// depend on any document field (status, popularity, rating, filters).
// Returns false for an unknown id.
func (s *Service) UpdateDocument(ctx context.Context, id string, upd docstore.DocumentUpdate) bool {
	res, ok := s.store.Update(id, upd)
	if !ok {
		if s.metrics != nil {
			s.metrics.DocumentUpdatesTotal.WithLabelValues("not_found").Inc()
		}
		return false
	}

	outcome := "applied"
	if res.ContentChanged {
		outcome = "versioned"
	}
	if res.IndexChanged {
		s.rebuildIndex()
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Error("search cache invalidation failed", "doc_id", id, "error", err)
		}
	}
	if s.metrics != nil {
		s.metrics.DocumentUpdatesTotal.WithLabelValues(outcome).Inc()
	}
	s.logger.Info("document updated", "doc_id", id, "content_changed", res.ContentChanged, "version", res.VersionLabel)
	return true
}

// VersionHistory returns a document's versions, oldest first.
func (s *Service) VersionHistory(id string) []docstore.Version {
	return s.store.VersionHistory(id)
}

// DocumentVersion reconstructs a historical view of a document.
func (s *Service) DocumentVersion(id string, label string) (docstore.Document, bool) {
	return s.store.DocumentVersion(id, label)
}

// MarkHelpful records a helpfulness vote. The helpful counter only moves on
// a positive vote, but an event is recorded either way. Returns false for
// an unknown id, in which case no event is recorded.
func (s *Service) MarkHelpful(id string, helpful bool) bool {
	if !s.store.Exists(id) {
		return false
	}
	if helpful {
		s.store.AddHelpful(id)
	}
	s.recorder.Track(analytics.Event{
		DocumentID: id,
		Kind:       analytics.KindHelpful,
		Metadata:   map[string]any{"helpful": helpful},
	})
	if s.metrics != nil {
		helpfulLabel := "false"
		if helpful {
			helpfulLabel = "true"
		}
		s.metrics.HelpfulVotesTotal.WithLabelValues(helpfulLabel).Inc()
		s.metrics.AnalyticsEventsTotal.WithLabelValues(string(analytics.KindHelpful)).Inc()
	}
	return true
}

// Bookmark adds the document to the process-wide bookmark set. The set is
// global, not per-user, and there is no unbookmark operation. Returns false
// for an unknown id.
func (s *Service) Bookmark(id string) bool {
	if !s.store.SetBookmarked(id) {
		return false
	}
	s.bookmarkMu.Lock()
	s.bookmarks[id] = struct{}{}
	s.bookmarkMu.Unlock()

	s.recorder.Track(analytics.Event{
		DocumentID: id,
		Kind:       analytics.KindBookmark,
	})
	if s.metrics != nil {
		s.metrics.BookmarksTotal.Inc()
		s.metrics.AnalyticsEventsTotal.WithLabelValues(string(analytics.KindBookmark)).Inc()
	}
	return true
}

// Bookmarks returns the bookmarked documents, sorted by id.
func (s *Service) Bookmarks() []docstore.Document {
	s.bookmarkMu.Lock()
	ids := make([]string, 0, len(s.bookmarks))
	for id := range s.bookmarks {
		ids = append(ids, id)
	}
	s.bookmarkMu.Unlock()
	sort.Strings(ids)
	return s.store.GetMany(ids)
}

// Analytics returns the events matching the filter.
func (s *Service) Analytics(filter analytics.Filter) []analytics.Event {
	return s.recorder.Query(filter)
}

// AnalyticsStats returns the aggregated event summary.
func (s *Service) AnalyticsStats() analytics.Stats {
	return s.recorder.Stats()
}

// CacheStats returns search cache hit/miss counters, with ok=false when no
// cache is configured.
func (s *Service) CacheStats() (hits, misses int64, ok bool) {
	if s.cache == nil {
		return 0, 0, false
	}
	hits, misses = s.cache.Stats()
	return hits, misses, true
}

// InvalidateCache flushes the search cache, if configured.
func (s *Service) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}

func (s *Service) rebuildIndex() {
	start := time.Now()
	docs := s.store.All()
	entries := make([]index.Entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, index.Entry{
			ID:   d.ID,
			Text: index.EntryText(d.Title, d.Content, d.SearchTerms, d.Tags),
		})
	}
	s.index.Rebuild(entries)

	if s.metrics != nil {
		s.metrics.IndexRebuildsTotal.Inc()
		s.metrics.IndexRebuildDuration.Observe(time.Since(start).Seconds())
		s.metrics.IndexTermCount.Set(float64(s.index.TermCount()))
	}
	s.logger.Debug("index rebuilt", "documents", len(docs), "terms", s.index.TermCount(), "took", time.Since(start))
}
