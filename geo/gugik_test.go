package geo

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GugikClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewGugikClient(&http.Client{Timeout: 5 * time.Second}, "Warszawa")
	g.SetURL(srv.URL)
	return g
}

func TestFetchPointsParsesCoordinates(t *testing.T) {
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		reqs := req["reqs"].([]any)
		first := reqs[0].(map[string]any)
		if first["ul_pelna"] != "Marszalkowska" {
			t.Errorf("unexpected street %v", first["ul_pelna"])
		}
		if first["miejsc_nazwa"] != "Warszawa" {
			t.Errorf("unexpected city %v", first["miejsc_nazwa"])
		}

		w.Write([]byte(`[{"others":[
			{"geometry":{"coordinates":[21.0,52.2]}},
			{"geometry":{"coordinates":[21.2,52.4]}}
		]}]`))
	})

	points, err := g.FetchPoints(context.Background(), "Marszalkowska")
	if err != nil {
		t.Fatalf("FetchPoints error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Lat != 52.2 || points[0].Lng != 21.0 {
		t.Fatalf("coordinate order wrong: %+v", points[0])
	}
}

func TestFetchPointsEmptyResponse(t *testing.T) {
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	points, err := g.FetchPoints(context.Background(), "Nieistniejaca")
	if err != nil {
		t.Fatalf("FetchPoints error: %v", err)
	}
	if points != nil {
		t.Fatalf("expected no points, got %+v", points)
	}
}

func TestFetchPointsServiceError(t *testing.T) {
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := g.FetchPoints(context.Background(), "Marszalkowska"); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestAverageLocationCentroid(t *testing.T) {
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"others":[
			{"geometry":{"coordinates":[21.0,52.0]}},
			{"geometry":{"coordinates":[21.2,52.4]}}
		]}]`))
	})

	loc, err := AverageLocation(context.Background(), g, "Marszalkowska")
	if err != nil {
		t.Fatalf("AverageLocation error: %v", err)
	}
	if loc == nil {
		t.Fatalf("expected a location")
	}
	if math.Abs(loc.Lat-52.2) > 1e-9 || math.Abs(loc.Lng-21.1) > 1e-9 {
		t.Fatalf("unexpected centroid %+v", loc)
	}
}

func TestAverageLocationNoMatch(t *testing.T) {
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"others":[]}]`))
	})

	loc, err := AverageLocation(context.Background(), g, "Nieistniejaca")
	if err != nil {
		t.Fatalf("AverageLocation error: %v", err)
	}
	if loc != nil {
		t.Fatalf("expected nil location, got %+v", loc)
	}
}
