package geo

import (
	"math"

	"courier-route-service/internal/domain"
)

const earthRadiusMeters = 6_371_000.0

// DistanceMeters returns the great-circle (haversine) distance in meters
// between two coordinates. Accuracy is standard haversine accuracy; ellipsoid
// flattening is ignored. Out-of-range coordinates are a caller contract
// violation and are not handled defensively (NaN propagates).
func DistanceMeters(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}
