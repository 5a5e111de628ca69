// Package tags derives keyword tags from review text and ranks a
// product's accumulated tags for faceted browsing.
package tags

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxPerReview caps how many tags a single review yields.
	MaxPerReview = 5
	// MaxRanked caps a product's ranked tag list.
	MaxRanked = 10

	// Tokens at or below this rune count never become tags.
	minTokenRunes = 2
)

// nonWord strips punctuation while keeping letters, digits, underscore
// and whitespace, so accented words survive intact.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// stopWords is the closed set of English function words excluded from
// extraction. Tests pin extraction output against this exact list, so
// growing it is a behavior change, not a tweak.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "i": {},
	"you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {},
}

// Extract derives at most MaxPerReview tags from free-form review text.
// The text is lowercased, stripped of punctuation, and split on
// whitespace; short tokens and stop words are dropped. Distinct
// survivors are returned in first-insertion order and the list is hard
// truncated at the cap. Truncation is deliberately NOT frequency
// ordered: a token seen once early beats a token seen often late.
func Extract(text string) []string {
	if text == "" {
		return nil
	}
	clean := nonWord.ReplaceAllString(strings.ToLower(text), "")

	out := make([]string, 0, MaxPerReview)
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(clean) {
		if utf8.RuneCountInString(tok) <= minTokenRunes {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
		if len(out) == MaxPerReview {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
