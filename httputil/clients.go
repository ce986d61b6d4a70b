package httputil

import (
	"net/http"
	"net/url"
	"time"
)

type Clients struct {
	Scraping *http.Client // for listing portals
	Geocode  *http.Client // for the geocoding API
}

// NewClients builds the two outbound HTTP clients. Portal requests can
// be routed through a proxy; the geocoding API is always hit directly.
func NewClients(proxyURL string) *Clients {
	transport := &http.Transport{}
	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	}

	scraping := &http.Client{
		Timeout:   15 * time.Second,
		Transport: transport,
	}

	return &Clients{
		Scraping: scraping,
		Geocode:  &http.Client{Timeout: 10 * time.Second},
	}
}
