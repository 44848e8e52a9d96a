package docstore

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Damatnic/astral-turf-helpcenter/pkg/logger"
)

// Store is the authoritative in-memory document and version store. All
// methods are safe for concurrent use; documents are returned as deep
// copies.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]*Document
	versions map[string][]Version
	logger   *slog.Logger
}

// UpdateResult reports what an Update call changed.
type UpdateResult struct {
	// ContentChanged is true when the update supplied new content and a
	// version snapshot was appended.
	ContentChanged bool
	// IndexChanged is true when any indexed field (title, content, search
	// terms, tags) was touched. The caller is responsible for rebuilding
	// any derived index.
	IndexChanged bool
	VersionLabel string
}

// NewStore creates a Store seeded with the given documents. Seed documents
// with duplicate IDs overwrite earlier ones.
func NewStore(seed []Document) *Store {
	s := &Store{
		docs:     make(map[string]*Document, len(seed)),
		versions: make(map[string][]Version, len(seed)),
		logger:   logger.WithComponent("docstore"),
	}
	for _, d := range seed {
		doc := d.Clone()
		if doc.LastUpdated.IsZero() {
			doc.LastUpdated = time.Now().UTC()
		}
		s.docs[doc.ID] = &doc
	}
	return s
}

// Get returns the document with the given id. As a side effect it
// increments the view counter and refreshes the last-viewed timestamp, so
// it is deliberately not idempotent. The caller records the corresponding
// analytics event.
func (s *Store) Get(id string) (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return Document{}, false
	}
	doc.Metadata.Views++
	doc.Metadata.LastViewed = time.Now().UTC()
	return doc.Clone(), true
}

// Peek returns the document without touching its view counters. Used by the
// search engine, discovery helpers, and export.
func (s *Store) Peek(id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return Document{}, false
	}
	return doc.Clone(), true
}

// GetMany returns the subset of the given ids that exist, in input order.
// Unknown ids are silently dropped; this is a bulk lookup, not a
// transactional fetch. View counters are not touched.
func (s *Store) GetMany(ids []string) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, 0, len(ids))
	for _, id := range ids {
		if doc, ok := s.docs[id]; ok {
			out = append(out, doc.Clone())
		}
	}
	return out
}

// All returns a snapshot copy of every document, sorted by ID for
// determinism.
func (s *Store) All() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Update merges the non-nil fields of upd into the document and refreshes
// LastUpdated. If new content differs from the current content a Version is
// appended and the result's ContentChanged is set; touching any indexed
// field sets IndexChanged. Returns ok=false for an unknown id, with no other
// effect.
func (s *Store) Update(id string, upd DocumentUpdate) (UpdateResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return UpdateResult{}, false
	}

	var res UpdateResult
	now := time.Now().UTC()

	if upd.Content != nil && *upd.Content != doc.Content {
		label := upd.VersionLabel
		if label == "" {
			label = doc.Version + ".1"
		}
		s.versions[id] = append(s.versions[id], Version{
			Label:     label,
			Timestamp: now,
			Author:    upd.VersionAuthor,
			Changes:   append([]string(nil), upd.VersionChanges...),
			Content:   *upd.Content,
		})
		doc.Content = *upd.Content
		doc.Version = label
		res.ContentChanged = true
		res.IndexChanged = true
		res.VersionLabel = label
		s.logger.Debug("version appended", "doc_id", id, "version", label)
	}

	if upd.Title != nil {
		doc.Title = *upd.Title
		res.IndexChanged = true
	}
	if upd.Category != nil {
		doc.Category = *upd.Category
	}
	if upd.Tags != nil {
		doc.Tags = append([]string(nil), (*upd.Tags)...)
		res.IndexChanged = true
	}
	if upd.Status != nil {
		doc.Status = *upd.Status
	}
	if upd.Difficulty != nil {
		doc.Difficulty = *upd.Difficulty
	}
	if upd.Popularity != nil {
		doc.Popularity = *upd.Popularity
	}
	if upd.Rating != nil {
		doc.Rating = *upd.Rating
	}
	if upd.EstimatedReadTime != nil {
		doc.EstimatedReadTime = *upd.EstimatedReadTime
	}
	if upd.SearchTerms != nil {
		doc.SearchTerms = append([]string(nil), (*upd.SearchTerms)...)
		res.IndexChanged = true
	}
	if upd.RelatedDocs != nil {
		doc.RelatedDocs = append([]string(nil), (*upd.RelatedDocs)...)
	}
	doc.LastUpdated = now

	return res, true
}

// VersionHistory returns all recorded versions for a document, oldest
// first. Empty when the document has no versions or does not exist.
func (s *Store) VersionHistory(id string) []Version {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.versions[id]
	out := make([]Version, 0, len(history))
	for _, v := range history {
		out = append(out, v.clone())
	}
	return out
}

// DocumentVersion reconstructs a historical view of the document: current
// metadata overlaid with the historical content, version label, and
// timestamp. Not found when either the document or that exact version label
// is missing.
func (s *Store) DocumentVersion(id string, label string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return Document{}, false
	}
	for _, v := range s.versions[id] {
		if v.Label == label {
			out := doc.Clone()
			out.Content = v.Content
			out.Version = v.Label
			out.LastUpdated = v.Timestamp
			return out, true
		}
	}
	return Document{}, false
}

// AddHelpful increments the helpful counter. Returns false for an unknown
// id.
func (s *Store) AddHelpful(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return false
	}
	doc.Metadata.Helpful++
	return true
}

// Exists reports whether a document with the given id is present.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[id]
	return ok
}

// SetBookmarked flags the document as bookmarked. Returns false for an
// unknown id. There is no way to clear the flag; the interface has no
// unbookmark operation.
func (s *Store) SetBookmarked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return false
	}
	doc.Metadata.Bookmarked = true
	return true
}

// Len returns the number of documents in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
