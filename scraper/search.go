package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"flat_scout/models"
)

var priceDigitsRegex = regexp.MustCompile(`\d+`)

// SearchHandler fetches the configured search-results page and extracts
// listing stubs from it. The search URL carries the portal's own price
// filters, so extraction stays a thin structural mapping.
type SearchHandler struct {
	url    string
	client *http.Client
}

func NewSearchHandler(url string, client *http.Client) *SearchHandler {
	return &SearchHandler{url: url, client: client}
}

// Fetch downloads the search page and returns the stubs found on it.
func (h *SearchHandler) Fetch(ctx context.Context) ([]models.ListingStub, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, err
	}
	setBrowserHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search page status %d", resp.StatusCode)
	}

	return ExtractStubs(resp.Body)
}

// ExtractStubs parses an OLX search-results document. Rows that cannot
// be parsed are logged and skipped; one broken card must not lose the
// whole page.
func ExtractStubs(body io.Reader) ([]models.ListingStub, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var stubs []models.ListingStub
	doc.Find(`div[data-cy="l-card"]`).Each(func(_ int, card *goquery.Selection) {
		stub, err := extractCard(card)
		if err != nil {
			log.Printf("Skipping card: %v", err)
			return
		}
		stubs = append(stubs, stub)
	})

	return stubs, nil
}

func extractCard(card *goquery.Selection) (models.ListingStub, error) {
	anchor := card.Find("a").First()
	if anchor.Length() == 0 {
		return models.ListingStub{}, &models.MalformedListingError{
			Field: "link", Err: fmt.Errorf("no anchor in card"),
		}
	}

	title := strings.TrimSpace(anchor.Find("h6").Text())
	if title == "" {
		return models.ListingStub{}, &models.MalformedListingError{
			Field: "title", Err: fmt.Errorf("empty title"),
		}
	}

	link, ok := anchor.Attr("href")
	if !ok || link == "" {
		return models.ListingStub{}, &models.MalformedListingError{
			Field: "link", Err: fmt.Errorf("missing href"),
		}
	}
	if !strings.HasPrefix(link, "https://") {
		link = "https://www.olx.pl" + link
	}

	priceText := card.Find(`p[data-testid="ad-price"]`).First().Text()
	price, err := parsePrice(priceText)
	if err != nil {
		return models.ListingStub{}, &models.MalformedListingError{Field: "price", Err: err}
	}

	return models.ListingStub{
		Title:  title,
		Price:  price,
		Link:   link,
		Portal: DetectPortal(link),
	}, nil
}

func parsePrice(text string) (int, error) {
	cleaned := strings.ReplaceAll(text, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	match := priceDigitsRegex.FindString(cleaned)
	if match == "" {
		return 0, fmt.Errorf("no digits in price %q", text)
	}
	return strconv.Atoi(match)
}

// DetectPortal classifies a listing link by host. OLX search results
// can link out to Otodom for cross-posted offers.
func DetectPortal(link string) models.Portal {
	switch {
	case strings.Contains(link, "otodom.pl"):
		return models.PortalOtodom
	case strings.Contains(link, "olx.pl"):
		return models.PortalOLX
	default:
		return models.PortalUnknown
	}
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pl-PL,pl;q=0.9,en;q=0.8")
}
