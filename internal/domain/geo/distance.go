// Package geo provides great-circle distance and nearest-neighbour selection
// used to narrow the recipient pool before ranking.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by Distance.
const EarthRadiusMeters = 6371000.0

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Valid reports whether both components are finite and within range.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// PointFrom builds a Point from optional coordinates. The boolean is false when
// either coordinate is missing or the pair is not a valid position.
func PointFrom(lat, lon *float64) (Point, bool) {
	if lat == nil || lon == nil {
		return Point{}, false
	}
	p := Point{Lat: *lat, Lon: *lon}
	if !p.Valid() {
		return Point{}, false
	}
	return p, true
}

// Distance returns the haversine distance between a and b in metres.
func Distance(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
