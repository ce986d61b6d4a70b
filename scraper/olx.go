package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"flat_scout/models"
)

// extractOlxDetails reads an OLX ad page. The rent shows up as a list
// item with a "Czynsz" prefix; the description lives in a dedicated
// container. A missing description makes the listing unevaluable.
func extractOlxDetails(doc *goquery.Document, title string) (*models.ListingDetails, error) {
	desc := doc.Find(`div[data-cy="ad_description"]`).First()
	if desc.Length() == 0 {
		return nil, &models.MissingContentError{Title: title}
	}

	var rent *int
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		text := strings.TrimSpace(li.Text())
		if !strings.HasPrefix(text, "Czynsz") {
			return
		}
		match := priceDigitsRegex.FindString(text)
		if match == "" {
			return
		}
		if value, err := strconv.Atoi(match); err == nil {
			rent = &value
		}
	})

	return &models.ListingDetails{
		Description:   desc.Text(),
		DisplayedRent: rent,
	}, nil
}
