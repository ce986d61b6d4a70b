package models

import (
	"time"

	"flat_scout/geo"
)

// Portal identifies which listing site a stub came from.
type Portal string

const (
	PortalOLX     Portal = "olx"
	PortalOtodom  Portal = "otodom"
	PortalUnknown Portal = "unknown"
)

// ListingStub is the minimal data extracted from a search-results page
// before the detail page is visited.
type ListingStub struct {
	Title  string `json:"title"`
	Price  int    `json:"price"`
	Link   string `json:"link"`
	Portal Portal `json:"portal"`
}

// Offer is a listing stub enriched with detail-page data and the
// derived signals used for qualification. Nil pointer fields mean the
// signal is unknown, which is a valid terminal state.
type Offer struct {
	ID          string        `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Price       int           `json:"price" db:"price"`
	Link        string        `json:"link" db:"link"`
	Portal      Portal        `json:"portal" db:"portal"`
	Description string        `json:"description" db:"description"`
	Rent        *int          `json:"rent" db:"rent"`
	Distance    *float64      `json:"distance" db:"distance"`
	Blacklisted *bool         `json:"blacklisted" db:"blacklisted"`
	Location    *geo.Location `json:"location,omitempty"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// TotalCost is the monthly cost including any known additional rent.
func (o *Offer) TotalCost() int {
	if o.Rent == nil {
		return o.Price
	}
	return o.Price + *o.Rent
}

// IsTooFar reports whether the offer is disqualified on location
// grounds. A blacklisted offer is always too far. An unknown distance
// is not evidence of being far.
func (o *Offer) IsTooFar(maxDistanceKM float64) bool {
	if o.Blacklisted != nil && *o.Blacklisted {
		return true
	}
	if o.Distance == nil {
		return false
	}
	return *o.Distance > maxDistanceKM
}
