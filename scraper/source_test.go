package scraper

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"flat_scout/models"
)

func loadDocument(t *testing.T, name string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(loadFixture(t, name)))
	if err != nil {
		t.Fatalf("parse fixture %s: %v", name, err)
	}
	return doc
}

func TestExtractOlxDetails(t *testing.T) {
	doc := loadDocument(t, "olx_detail_basic.html")
	stub := models.ListingStub{Title: "Kawalerka", Portal: models.PortalOLX}

	details, err := ExtractDetails(doc, stub)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if details.DisplayedRent == nil || *details.DisplayedRent != 450 {
		t.Fatalf("expected displayed rent 450, got %v", details.DisplayedRent)
	}
	if !strings.Contains(details.Description, "ul. Nowowiejska") {
		t.Fatalf("description not extracted: %q", details.Description)
	}
}

func TestExtractOlxDetailsMissingDescription(t *testing.T) {
	doc := loadDocument(t, "olx_detail_no_description.html")
	stub := models.ListingStub{Title: "Usunięte", Portal: models.PortalOLX}

	_, err := ExtractDetails(doc, stub)
	var missing *models.MissingContentError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingContentError, got %v", err)
	}
	if missing.Title != "Usunięte" {
		t.Fatalf("error should carry the listing title, got %q", missing.Title)
	}
}

func TestExtractOtodomDetails(t *testing.T) {
	doc := loadDocument(t, "otodom_detail_basic.html")
	stub := models.ListingStub{Title: "Dwupokojowe", Portal: models.PortalOtodom}

	details, err := ExtractDetails(doc, stub)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if details.DisplayedRent == nil || *details.DisplayedRent != 600 {
		t.Fatalf("expected displayed rent 600 from script data, got %v", details.DisplayedRent)
	}
	if !strings.Contains(details.Description, "aleja Niepodległości") {
		t.Fatalf("description not extracted: %q", details.Description)
	}
}

func TestExtractDetailsUnknownPortal(t *testing.T) {
	doc := loadDocument(t, "olx_detail_basic.html")
	stub := models.ListingStub{Title: "X", Portal: models.PortalUnknown}

	_, err := ExtractDetails(doc, stub)
	var malformed *models.MalformedListingError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedListingError, got %v", err)
	}
}
