package services

import (
	"context"
	"log"
	"strings"
	"time"

	"flat_scout/config"
	"flat_scout/geo"
	"flat_scout/identity"
	"flat_scout/models"
	"flat_scout/parsing"
)

// ListingSource fetches and extracts detail-page data for a stub.
// Implemented by scraper.DetailFetcher; stubbed in tests.
type ListingSource interface {
	FetchDetails(ctx context.Context, stub models.ListingStub) (*models.ListingDetails, error)
}

// EnrichmentService turns a listing stub into a fully evaluated offer:
// detail fetch, text normalization, blacklist verdict, rent
// reconciliation and street geolocation.
type EnrichmentService struct {
	source    ListingSource
	geocoder  geo.Geocoder
	blacklist parsing.Blacklist
	rent      *parsing.RentExtractor
	street    *parsing.StreetPattern
	center    geo.Location
}

func NewEnrichmentService(search *config.SearchConfig, source ListingSource, geocoder geo.Geocoder) (*EnrichmentService, error) {
	street, err := parsing.NewStreetPattern(search.StreetPattern)
	if err != nil {
		return nil, err
	}

	return &EnrichmentService{
		source:    source,
		geocoder:  geocoder,
		blacklist: parsing.NewBlacklist(search.Blacklist),
		rent:      parsing.NewRentExtractor(search.MinRent, search.MaxRent),
		street:    street,
		center:    search.Center,
	}, nil
}

// Enrich runs the per-listing pipeline. The steps are strictly ordered:
// the blacklist verdict decides whether the geocoding call happens at
// all, since a blacklisted offer is disqualified regardless of
// distance. A failed detail fetch aborts this listing only.
func (s *EnrichmentService) Enrich(ctx context.Context, stub models.ListingStub) (*models.Offer, error) {
	details, err := s.source.FetchDetails(ctx, stub)
	if err != nil {
		return nil, err
	}

	// Title is prefixed so street and rent mentions in it are
	// detectable too.
	normalized := parsing.Normalize(stub.Title + " | " + details.Description)

	blacklisted := s.blacklist.Matches(normalized)
	rent := parsing.ReconcileRent(details.DisplayedRent, s.rent.Extract(normalized))

	offer := &models.Offer{
		ID:          identity.OfferID(stub.Title, stub.Price),
		Title:       stub.Title,
		Price:       stub.Price,
		Link:        stub.Link,
		Portal:      stub.Portal,
		Description: details.Description,
		Rent:        rent,
		Blacklisted: &blacklisted,
		CreatedAt:   time.Now(),
	}

	if !blacklisted {
		offer.Location, offer.Distance = s.locate(ctx, normalized)
	}

	return offer, nil
}

// locate resolves the first street mention to a centroid location and
// its distance from the configured center. Lookup failures degrade to
// "unknown", never to an error.
func (s *EnrichmentService) locate(ctx context.Context, text parsing.NormalizedText) (*geo.Location, *float64) {
	street := strings.TrimSpace(s.street.Find(text))
	if street == "" {
		return nil, nil
	}

	location, err := geo.AverageLocation(ctx, s.geocoder, street)
	if err != nil {
		lookupErr := &models.LookupUnavailableError{Op: "geocode", Err: err}
		log.Printf("Warning: %v", lookupErr)
		return nil, nil
	}
	if location == nil {
		return nil, nil
	}

	distance := location.DistanceTo(s.center)
	return location, &distance
}
