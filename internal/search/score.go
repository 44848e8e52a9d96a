package search

import (
	"strings"

	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
)

// Field weights and the cap on the content-occurrence contribution.
const (
	titleWeight      = 10.0
	searchTermWeight = 8.0
	tagWeight        = 6.0
	occurrenceWeight = 0.5
	occurrenceCap    = 5.0
)

// score computes a document's relevance for the given deduplicated query
// words, and reports which words matched in title, search terms, or tags
// (content-only matches count toward the score but are not reported).
//
// With no query words the score is popularity alone. Otherwise the summed
// per-word text score is amplified multiplicatively by popularity and
// rating, so a zero-popularity document can still surface on a strong text
// match.
func score(doc docstore.Document, queryWords []string) (float64, []string) {
	if len(queryWords) == 0 {
		return doc.Popularity / 100, nil
	}

	title := strings.ToLower(doc.Title)
	content := strings.ToLower(doc.Content)
	searchTerms := lowerAll(doc.SearchTerms)
	tags := lowerAll(doc.Tags)

	var text float64
	var matched []string
	for _, word := range queryWords {
		fieldMatch := false
		if strings.Contains(title, word) {
			text += titleWeight
			fieldMatch = true
		}
		if containsAny(searchTerms, word) {
			text += searchTermWeight
			fieldMatch = true
		}
		if containsAny(tags, word) {
			text += tagWeight
			fieldMatch = true
		}
		if occ := strings.Count(content, word); occ > 0 {
			contribution := float64(occ) * occurrenceWeight
			if contribution > occurrenceCap {
				contribution = occurrenceCap
			}
			text += contribution
		}
		if fieldMatch {
			matched = append(matched, word)
		}
	}

	return text * (1 + doc.Popularity/100) * (1 + doc.Rating/5), matched
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func containsAny(values []string, word string) bool {
	for _, v := range values {
		if strings.Contains(v, word) {
			return true
		}
	}
	return false
}
