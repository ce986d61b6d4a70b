// Package identity derives stable offer identities for deduplication.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// OfferID hashes title and price into a stable identity. Two listings
// sharing both fields are the same offer, even across separate fetches
// and process restarts. The separator and field order are part of the
// contract; changing either breaks deduplication against stored data.
func OfferID(title string, price int) string {
	input := fmt.Sprintf("%s | %d", title, price)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:16])
}
