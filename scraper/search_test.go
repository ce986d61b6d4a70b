package scraper

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"flat_scout/models"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}

func TestExtractStubsBasic(t *testing.T) {
	data := loadFixture(t, "olx_search_basic.html")

	stubs, err := ExtractStubs(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	// The third card has no parsable price and must be skipped.
	if len(stubs) != 2 {
		t.Fatalf("expected 2 stubs, got %d", len(stubs))
	}

	first := stubs[0]
	if first.Title != "Kawalerka przy metrze Politechnika" {
		t.Fatalf("unexpected title %q", first.Title)
	}
	if first.Price != 2200 {
		t.Fatalf("expected price 2200, got %d", first.Price)
	}
	if first.Link != "https://www.olx.pl/d/oferta/kawalerka-metro-politechnika-CID3-IDabc123.html" {
		t.Fatalf("relative link not absolutized: %q", first.Link)
	}
	if first.Portal != models.PortalOLX {
		t.Fatalf("expected OLX portal, got %q", first.Portal)
	}

	second := stubs[1]
	if second.Price != 3100 {
		t.Fatalf("expected price 3100, got %d", second.Price)
	}
	if second.Portal != models.PortalOtodom {
		t.Fatalf("expected Otodom portal for cross-posted link, got %q", second.Portal)
	}
}

func TestExtractStubsEmptyPage(t *testing.T) {
	stubs, err := ExtractStubs(bytes.NewReader([]byte(`<html><body></body></html>`)))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(stubs) != 0 {
		t.Fatalf("expected no stubs, got %d", len(stubs))
	}
}

func TestParsePrice(t *testing.T) {
	cases := map[string]int{
		"2 200 zł":   2200,
		"3100zł":     3100,
		"1 050 zł/m": 1050,
	}
	for text, want := range cases {
		got, err := parsePrice(text)
		if err != nil {
			t.Fatalf("%q: %v", text, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d, got %d", text, want, got)
		}
	}

	if _, err := parsePrice("Zamienię"); err == nil {
		t.Fatalf("expected error for price without digits")
	}
}

func TestDetectPortal(t *testing.T) {
	cases := map[string]models.Portal{
		"https://www.olx.pl/d/oferta/x.html": models.PortalOLX,
		"https://www.otodom.pl/pl/oferta/y":  models.PortalOtodom,
		"https://example.com/listing":        models.PortalUnknown,
	}
	for link, want := range cases {
		if got := DetectPortal(link); got != want {
			t.Fatalf("%q: expected %q, got %q", link, want, got)
		}
	}
}
