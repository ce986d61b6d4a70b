package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"flat_scout/models"
)

// Otodom keeps the structured rent inside its bootstrap script data
// rather than in the rendered page.
var otodomRentRegex = regexp.MustCompile(`"key":"rent","value":"(\d+)"`)

func extractOtodomDetails(doc *goquery.Document, title string) (*models.ListingDetails, error) {
	desc := doc.Find(`div[data-cy="adPageAdDescription"]`).First()
	if desc.Length() == 0 {
		return nil, &models.MissingContentError{Title: title}
	}

	var scripts []string
	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		scripts = append(scripts, script.Text())
	})

	var rent *int
	if match := otodomRentRegex.FindStringSubmatch(strings.Join(scripts, " ")); match != nil {
		if value, err := strconv.Atoi(match[1]); err == nil {
			rent = &value
		}
	}

	return &models.ListingDetails{
		Description:   desc.Text(),
		DisplayedRent: rent,
	}, nil
}
