// Package keywords ranks the most frequent content words of a text.
package keywords

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mx-space/docinsight/internal/models"
)

// DefaultTopK is the number of keywords kept on an insight.
const DefaultTopK = 5

// FallbackLeadIn prefixes the summary built from ranked keywords.
const FallbackLeadIn = "Top 5 frequent words (fallback): "

const minTokenLength = 3

// Tokens lowercases text, turns every non-letter into a separator and drops
// stopwords and tokens shorter than three characters.
func Tokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenLength {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Rank returns the k most frequent tokens of text with their counts, highest
// first. Tokens with equal counts keep the order they first appeared in.
func Rank(text string, k int) models.WordCounts {
	if k <= 0 {
		return models.WordCounts{}
	}

	counts := make(map[string]int)
	order := make([]string, 0, 64)
	for _, tok := range Tokens(text) {
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if k > len(order) {
		k = len(order)
	}

	out := make(models.WordCounts, 0, k)
	for _, w := range order[:k] {
		out = append(out, models.WordCount{Word: w, Count: counts[w]})
	}
	return out
}

// FallbackSummary renders ranked words as `word (count)` pairs behind FallbackLeadIn.
func FallbackSummary(words models.WordCounts) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, fmt.Sprintf("%s (%d)", w.Word, w.Count))
	}
	return FallbackLeadIn + strings.Join(parts, ", ")
}
