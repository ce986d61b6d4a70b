package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	digitRunRegex = regexp.MustCompile(`\d+`)
	plusRegex     = regexp.MustCompile(`plus\s*(\d+)\s*`)
)

// rentKeywords are the inflected Polish forms meaning "additional rent
// fee". Order matters: the first keyword that yields an in-bounds value
// wins.
var rentKeywords = []string{"czynsz", "czynszem", "czynszu"}

// RentExtractor finds a plausible monthly rent mentioned in free text.
// The sanity bounds reject digit runs that are really phone numbers,
// years or postal codes.
type RentExtractor struct {
	minRent int
	maxRent int // exclusive
}

func NewRentExtractor(minRent, maxRent int) *RentExtractor {
	return &RentExtractor{minRent: minRent, maxRent: maxRent}
}

// Extract returns the first in-bounds rent value found after a rent
// keyword, falling back to a "plus N" mention anywhere in the text.
// Nil means no rent was mentioned, which is a valid outcome.
//
// The keyword search runs with `,` `.` `!` stripped so a rent written
// with a thousands separator ("1.500") reads as one digit run. The
// plus fallback matches against the unstripped text.
func (r *RentExtractor) Extract(text NormalizedText) *int {
	lowered := strings.ToLower(text.Canonical)
	stripped := punctuationRegex.ReplaceAllString(lowered, "")

	for _, keyword := range rentKeywords {
		if !text.HasToken(keyword) {
			continue
		}
		_, after, found := strings.Cut(stripped, keyword)
		if !found {
			continue
		}
		match := digitRunRegex.FindString(after)
		if match == "" {
			continue
		}
		value, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if r.inBounds(value) {
			return &value
		}
	}

	if match := plusRegex.FindStringSubmatch(lowered); match != nil {
		value, err := strconv.Atoi(match[1])
		if err == nil && r.inBounds(value) {
			return &value
		}
	}

	return nil
}

func (r *RentExtractor) inBounds(value int) bool {
	return value >= r.minRent && value < r.maxRent
}

// ReconcileRent merges a source-displayed rent with a text-inferred
// one. Both absent means unknown; otherwise an absent side counts as
// zero and the larger value wins, so an explicit zero never suppresses
// a positive signal from the other source.
func ReconcileRent(displayed, inferred *int) *int {
	if displayed == nil && inferred == nil {
		return nil
	}
	d, i := 0, 0
	if displayed != nil {
		d = *displayed
	}
	if inferred != nil {
		i = *inferred
	}
	rent := max(d, i)
	return &rent
}
