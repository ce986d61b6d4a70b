// Package parsing turns raw listing text into the signals the
// enrichment pipeline evaluates: a normalized form, a blacklist
// verdict, a hidden rent value and a street mention.
package parsing

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	multiSpaceRegex  = regexp.MustCompile(`\s+`)
	punctuationRegex = regexp.MustCompile(`[,.!]+`)
)

// NormalizedText holds the two views of a description the extractors
// work on. Canonical keeps the original casing so street detection can
// rely on capitalization; Tokens is the lowercase word set used for
// exact-match lookups.
type NormalizedText struct {
	Canonical string
	Tokens    map[string]struct{}
}

// Normalize flattens newlines, collapses whitespace and transliterates
// diacritics, then derives a lowercase token set with `,` `.` `!`
// stripped. Empty input yields an empty token set.
func Normalize(text string) NormalizedText {
	canonical := strings.ReplaceAll(text, "\n", " ")
	canonical = multiSpaceRegex.ReplaceAllString(canonical, " ")
	canonical = unidecode.Unidecode(canonical)

	lowered := punctuationRegex.ReplaceAllString(strings.ToLower(canonical), "")

	tokens := make(map[string]struct{})
	for _, word := range strings.Split(lowered, " ") {
		if word == "" {
			continue
		}
		tokens[word] = struct{}{}
	}

	return NormalizedText{Canonical: canonical, Tokens: tokens}
}

// HasToken reports exact membership in the token set.
func (n NormalizedText) HasToken(word string) bool {
	_, ok := n.Tokens[word]
	return ok
}
