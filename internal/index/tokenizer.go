// Package index provides the tokenizer and the derived inverted index over
// the document store. The index maps normalized terms to posting sets of
// document ids and is rebuilt wholesale whenever indexed fields change.
package index

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\w+`)

const minTokenLength = 3

// Tokenize lowercases text, splits it into word-character runs, and drops
// tokens shorter than three characters. No stemming and no stop-word
// removal: recall over the exact tokens of the source text is required.
func Tokenize(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < minTokenLength {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// TokenizeUnique returns the distinct tokens of text in first-seen order.
// Used for query words, where each word contributes once to scoring and
// matched-term reporting.
func TokenizeUnique(text string) []string {
	tokens := Tokenize(text)
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
