package cache

import (
	"encoding/json"
	"fmt"

	"courier-route-service/internal/domain"
)

// segmentKey builds a stable cache key for a directed endpoint pair.
// Coordinates are printed at 1e-6 precision so keys are consistent across
// callers regardless of float formatting.
func segmentKey(from, to domain.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", from.Lat, from.Lon, to.Lat, to.Lon)
}

// Geometry is persisted as a JSON array of [lat, lon] pairs.
func encodeGeometry(path []domain.Coordinate) ([]byte, error) {
	pairs := make([][2]float64, 0, len(path))
	for _, p := range path {
		pairs = append(pairs, [2]float64{p.Lat, p.Lon})
	}
	return json.Marshal(pairs)
}

func decodeGeometry(raw []byte) ([]domain.Coordinate, error) {
	var pairs [][2]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	path := make([]domain.Coordinate, 0, len(pairs))
	for _, p := range pairs {
		path = append(path, domain.Coordinate{Lat: p[0], Lon: p[1]})
	}
	return path, nil
}
