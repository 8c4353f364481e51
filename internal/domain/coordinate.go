package domain

import "math"

// Immutable geographic coordinate in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Valid reports whether both components are finite and inside the
// WGS84 range (lat in [-90, 90], lon in [-180, 180]).
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}
