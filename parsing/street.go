package parsing

import "regexp"

// defaultStreetPattern matches a street-indicator prefix ("ul.",
// "aleja", ...) followed by capitalized words. It runs against the
// canonical, case-preserved text; the second capture group is the
// street-name phrase.
const defaultStreetPattern = `(ul\.|ulicy|ulica|al\.|aleja|Ul\.|Ulica|Al\.|Aleja)\s*(([A-Z][a-z]+\s*))+`

// StreetPattern extracts the street-name phrase from listing text.
type StreetPattern struct {
	regex *regexp.Regexp
}

// NewStreetPattern compiles the given pattern, or the default one when
// empty. The pattern must keep the street phrase in capture group 2.
func NewStreetPattern(pattern string) (*StreetPattern, error) {
	if pattern == "" {
		pattern = defaultStreetPattern
	}
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &StreetPattern{regex: regex}, nil
}

// Find returns the first street-name phrase mentioned in the text, or
// "" when no street indicator is present.
func (s *StreetPattern) Find(text NormalizedText) string {
	match := s.regex.FindStringSubmatch(text.Canonical)
	if match == nil {
		return ""
	}
	return match[2]
}
