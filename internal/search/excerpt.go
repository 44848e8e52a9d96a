package search

import (
	"strings"
	"unicode/utf8"
)

const excerptLimit = 200

// excerpt extracts the snippet shown alongside a search hit. With query
// words it picks the sentence containing the most distinct query-word
// matches (first sentence wins ties); with none it takes the start of the
// content. Either way the snippet is capped at 200 characters plus an
// ellipsis.
func excerpt(content string, queryWords []string) string {
	if len(queryWords) == 0 {
		return truncate(content, excerptLimit)
	}

	sentences := splitSentences(content)
	best := ""
	bestHits := -1
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		hits := 0
		for _, word := range queryWords {
			if strings.Contains(lower, word) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = sentence
		}
	}
	return truncate(strings.TrimSpace(best), excerptLimit)
}

func splitSentences(content string) []string {
	return strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// truncate cuts s to at most limit bytes, backing off to the previous rune
// boundary so a multibyte character is never split.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + "..."
}
