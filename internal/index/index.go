package index

import (
	"sort"
	"strings"
	"sync"
)

// Entry is one document's indexable text: the concatenation of its title,
// content, search terms, and tags.
type Entry struct {
	ID   string
	Text string
}

// EntryText joins a document's indexed fields into one Entry text blob.
func EntryText(title, content string, searchTerms, tags []string) string {
	parts := make([]string, 0, 2+len(searchTerms)+len(tags))
	parts = append(parts, title, content)
	parts = append(parts, searchTerms...)
	parts = append(parts, tags...)
	return strings.Join(parts, " ")
}

// Inverted is the derived term → posting-set index. It is not authoritative
// and is always reconstructible from the document store.
type Inverted struct {
	mu       sync.RWMutex
	postings map[string]map[string]struct{}
}

// New creates an empty index.
func New() *Inverted {
	return &Inverted{
		postings: make(map[string]map[string]struct{}),
	}
}

// Rebuild clears the index and re-indexes every entry. The rebuild is total
// and synchronous; at the corpus sizes this service targets (tens to low
// hundreds of documents) that is an accepted tradeoff over incremental
// posting-list maintenance.
func (ix *Inverted) Rebuild(entries []Entry) {
	fresh := make(map[string]map[string]struct{})
	for _, e := range entries {
		for _, term := range Tokenize(e.Text) {
			set, ok := fresh[term]
			if !ok {
				set = make(map[string]struct{})
				fresh[term] = set
			}
			set[e.ID] = struct{}{}
		}
	}

	ix.mu.Lock()
	ix.postings = fresh
	ix.mu.Unlock()
}

// Lookup returns the sorted posting set for a single normalized term.
func (ix *Inverted) Lookup(term string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	set, ok := ix.postings[term]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Candidates returns the union of the posting sets of the given tokens (OR
// semantics across query words).
func (ix *Inverted) Candidates(tokens []string) map[string]struct{} {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make(map[string]struct{})
	for _, term := range tokens {
		for id := range ix.postings[term] {
			out[id] = struct{}{}
		}
	}
	return out
}

// TermCount returns the number of distinct terms currently indexed.
func (ix *Inverted) TermCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.postings)
}
