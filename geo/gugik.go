package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultGeocodeURL = "https://capap.gugik.gov.pl/api/fts/gc/pkt"

// Geocoder resolves a street-name phrase to candidate coordinate
// points within a city.
type Geocoder interface {
	FetchPoints(ctx context.Context, street string) ([]Location, error)
}

// GugikClient geocodes against the Polish CAPAP full-text geocoding
// service. Ambiguous streets come back as multiple address points.
type GugikClient struct {
	url    string
	city   string
	client *http.Client
}

func NewGugikClient(client *http.Client, city string) *GugikClient {
	return &GugikClient{
		url:    defaultGeocodeURL,
		city:   city,
		client: client,
	}
}

// SetURL overrides the service endpoint, used by tests.
func (g *GugikClient) SetURL(url string) {
	g.url = url
}

type gugikRequest struct {
	Reqs                    []gugikQuery `json:"reqs"`
	UseExtServiceIfNotFound bool         `json:"useExtServiceIfNotFound"`
}

type gugikQuery struct {
	Street string `json:"ul_pelna"`
	City   string `json:"miejsc_nazwa"`
}

type gugikResult struct {
	Others []struct {
		Geometry struct {
			// Service order: [lng, lat]
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"others"`
}

// FetchPoints returns all address points matching the street phrase in
// the configured city. Callers treat any returned error as "location
// unknown" rather than a fatal condition.
func (g *GugikClient) FetchPoints(ctx context.Context, street string) ([]Location, error) {
	body, err := json.Marshal(gugikRequest{
		Reqs:                    []gugikQuery{{Street: street, City: g.city}},
		UseExtServiceIfNotFound: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", street, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode %q: status %d", street, resp.StatusCode)
	}

	var results []gugikResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geocode %q: decode: %w", street, err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	var points []Location
	for _, place := range results[0].Others {
		coords := place.Geometry.Coordinates
		if len(coords) < 2 {
			continue
		}
		points = append(points, Location{Lat: coords[1], Lng: coords[0]})
	}
	return points, nil
}

// AverageLocation geocodes a street and collapses the candidate points
// to their centroid. Returns nil when the street resolves to nothing.
func AverageLocation(ctx context.Context, g Geocoder, street string) (*Location, error) {
	points, err := g.FetchPoints(ctx, street)
	if err != nil {
		return nil, err
	}
	center, ok := Centroid(points)
	if !ok {
		return nil, nil
	}
	return &center, nil
}
