package parsing

import (
	"strings"
	"testing"
)

func findStreet(t *testing.T, text string) string {
	t.Helper()
	p, err := NewStreetPattern("")
	if err != nil {
		t.Fatalf("compile pattern: %v", err)
	}
	return p.Find(Normalize(text))
}

func TestFindStreetWithPrefix(t *testing.T) {
	got := findStreet(t, "Mieszkanie przy ul. Marszałkowska, blisko metra")
	if strings.TrimSpace(got) != "Marszalkowska" {
		t.Fatalf("expected Marszalkowska, got %q", got)
	}
}

func TestFindStreetPrefixVariants(t *testing.T) {
	cases := map[string]string{
		"Lokal na Ulica Piekna 15":      "Piekna",
		"apartament aleja Wilanowska 5": "Wilanowska",
		"Al. Jerozolimskie blisko":      "Jerozolimskie",
	}
	for text, want := range cases {
		if got := findStreet(t, text); strings.TrimSpace(got) != want {
			t.Fatalf("%q: expected %q, got %q", text, want, got)
		}
	}
}

func TestFindStreetRequiresCapitalizedName(t *testing.T) {
	if got := findStreet(t, "blisko ulicy bez nazwy"); got != "" {
		t.Fatalf("expected no street, got %q", got)
	}
}

func TestFindStreetNoIndicator(t *testing.T) {
	if got := findStreet(t, "Marszałkowska bez prefiksu"); got != "" {
		t.Fatalf("expected no street without indicator, got %q", got)
	}
}

func TestFindStreetTakesFirstMatch(t *testing.T) {
	got := findStreet(t, "ul. Pierwsza albo ul. Druga")
	if strings.TrimSpace(got) != "Pierwsza" {
		t.Fatalf("expected first match, got %q", got)
	}
}

func TestNewStreetPatternInvalid(t *testing.T) {
	if _, err := NewStreetPattern("ul.("); err == nil {
		t.Fatalf("expected compile error")
	}
}
