package parsing

// Blacklist is a set of lowercase terms that disqualify an offer.
// Inflected place-name forms are listed individually; matching is
// exact token membership, never substring or stem based.
type Blacklist map[string]struct{}

func NewBlacklist(terms []string) Blacklist {
	b := make(Blacklist, len(terms))
	for _, term := range terms {
		b[term] = struct{}{}
	}
	return b
}

// Matches reports whether any token of the normalized text is
// blacklisted.
func (b Blacklist) Matches(text NormalizedText) bool {
	for token := range text.Tokens {
		if _, ok := b[token]; ok {
			return true
		}
	}
	return false
}
