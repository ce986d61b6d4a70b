package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"flat_scout/models"
)

// DetailFetcher extracts detail-page data from live portal pages. The
// page is fetched and parsed once per listing; description and rent
// are both read from the same document.
type DetailFetcher struct {
	client *http.Client
}

func NewDetailFetcher(client *http.Client) *DetailFetcher {
	return &DetailFetcher{client: client}
}

func (f *DetailFetcher) FetchDetails(ctx context.Context, stub models.ListingStub) (*models.ListingDetails, error) {
	doc, err := f.fetchDocument(ctx, stub.Link)
	if err != nil {
		return nil, err
	}
	return ExtractDetails(doc, stub)
}

func (f *DetailFetcher) fetchDocument(ctx context.Context, link string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	setBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch detail page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detail page status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse detail page: %w", err)
	}
	return doc, nil
}

// ExtractDetails dispatches on the portal enum. Adding a portal is a
// deliberate enumeration update here and in DetectPortal.
func ExtractDetails(doc *goquery.Document, stub models.ListingStub) (*models.ListingDetails, error) {
	switch stub.Portal {
	case models.PortalOLX:
		return extractOlxDetails(doc, stub.Title)
	case models.PortalOtodom:
		return extractOtodomDetails(doc, stub.Title)
	default:
		return nil, &models.MalformedListingError{
			Field: "portal",
			Err:   fmt.Errorf("no detail extractor for portal %q", stub.Portal),
		}
	}
}
