package geo

import (
	"math"

	"github.com/mmcloughlin/geohash"
)

const earthRadiusKM = 6371.0

// Location is a point in decimal degrees.
type Location struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// DistanceTo returns the great-circle distance to other in kilometers,
// rounded to two decimal places.
func (l Location) DistanceTo(other Location) float64 {
	lat1 := l.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - l.Lat) * math.Pi / 180
	dLng := (other.Lng - l.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	d := 2 * earthRadiusKM * math.Asin(math.Sqrt(a))

	return math.Round(d*100) / 100
}

// Geohash encodes the location for coarse spatial grouping in storage.
func (l Location) Geohash() string {
	return geohash.Encode(l.Lat, l.Lng)
}

// Centroid averages latitude and longitude independently. Returns the
// zero Location and false for an empty slice.
func Centroid(points []Location) (Location, bool) {
	if len(points) == 0 {
		return Location{}, false
	}
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(points))
	return Location{Lat: sumLat / n, Lng: sumLng / n}, true
}
