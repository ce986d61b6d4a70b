package models

// ListingDetails is what a detail page contributes to enrichment. A
// nil DisplayedRent means the page shows no structured rent field.
type ListingDetails struct {
	Description   string
	DisplayedRent *int
}
