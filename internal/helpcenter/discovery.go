package helpcenter

import (
	"sort"

	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
)

// Related returns up to limit documents related to the given one: the
// document's explicit related list first (dangling references silently
// dropped), backfilled with other published documents ranked by shared-tag
// count. The result contains no duplicates and never the source document.
func (s *Service) Related(id string, limit int) []docstore.Document {
	if limit <= 0 {
		return []docstore.Document{}
	}
	source, ok := s.store.Peek(id)
	if !ok {
		return []docstore.Document{}
	}

	out := make([]docstore.Document, 0, limit)
	seen := map[string]struct{}{id: {}}

	for _, doc := range s.store.GetMany(source.RelatedDocs) {
		if _, dup := seen[doc.ID]; dup {
			continue
		}
		seen[doc.ID] = struct{}{}
		out = append(out, doc)
		if len(out) == limit {
			return out
		}
	}

	type candidate struct {
		doc     docstore.Document
		overlap int
	}
	candidates := make([]candidate, 0)
	for _, doc := range s.store.All() {
		if doc.Status != docstore.StatusPublished {
			continue
		}
		if _, dup := seen[doc.ID]; dup {
			continue
		}
		if overlap := sharedTags(source.Tags, doc.Tags); overlap > 0 {
			candidates = append(candidates, candidate{doc: doc, overlap: overlap})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].overlap != candidates[j].overlap {
			return candidates[i].overlap > candidates[j].overlap
		}
		return candidates[i].doc.ID < candidates[j].doc.ID
	})

	for _, c := range candidates {
		out = append(out, c.doc)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Popular returns up to limit published documents with the most views.
func (s *Service) Popular(limit int) []docstore.Document {
	docs := s.published()
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Metadata.Views != docs[j].Metadata.Views {
			return docs[i].Metadata.Views > docs[j].Metadata.Views
		}
		return docs[i].ID < docs[j].ID
	})
	return head(docs, limit)
}

// Recent returns up to limit published documents by last update, newest
// first.
func (s *Service) Recent(limit int) []docstore.Document {
	docs := s.published()
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].LastUpdated.Equal(docs[j].LastUpdated) {
			return docs[i].LastUpdated.After(docs[j].LastUpdated)
		}
		return docs[i].ID < docs[j].ID
	})
	return head(docs, limit)
}

// Categories returns the number of published documents in each category.
func (s *Service) Categories() map[docstore.Category]int {
	out := make(map[docstore.Category]int)
	for _, doc := range s.published() {
		out[doc.Category]++
	}
	return out
}

func (s *Service) published() []docstore.Document {
	all := s.store.All()
	out := all[:0]
	for _, doc := range all {
		if doc.Status == docstore.StatusPublished {
			out = append(out, doc)
		}
	}
	return out
}

func sharedTags(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	count := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			count++
		}
	}
	return count
}

func head(docs []docstore.Document, limit int) []docstore.Document {
	if limit < 0 {
		limit = 0
	}
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}
