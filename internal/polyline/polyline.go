// Package polyline implements the standard encoded-polyline format used by
// routing engines: signed coordinate deltas, variable-length base64-derived
// chunks, 1e-5 degree precision, latitude and longitude interleaved.
package polyline

import (
	"strings"

	"courier-route-service/internal/domain"
)

const precision = 1e-5

// Decode converts an encoded polyline string into its coordinate sequence.
// Empty input yields an empty sequence; a truncated trailing chunk ends the
// sequence at the last complete coordinate. Decoding never fails.
func Decode(encoded string) []domain.Coordinate {
	points := make([]domain.Coordinate, 0, len(encoded)/4)
	index, lat, lon := 0, 0, 0

	for index < len(encoded) {
		dLat, next, ok := decodeDelta(encoded, index)
		if !ok {
			return points
		}
		lat += dLat

		dLon, next, ok := decodeDelta(encoded, next)
		if !ok {
			return points
		}
		lon += dLon
		index = next

		points = append(points, domain.Coordinate{
			Lat: float64(lat) * precision,
			Lon: float64(lon) * precision,
		})
	}

	return points
}

// decodeDelta reads one zig-zag encoded signed delta starting at index.
func decodeDelta(encoded string, index int) (delta, next int, ok bool) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, false
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), index, true
	}
	return result >> 1, index, true
}

// Encode converts a coordinate sequence into its encoded polyline string.
func Encode(points []domain.Coordinate) string {
	var sb strings.Builder
	prevLat, prevLon := 0, 0

	for _, p := range points {
		lat := round(p.Lat / precision)
		lon := round(p.Lon / precision)
		encodeDelta(&sb, lat-prevLat)
		encodeDelta(&sb, lon-prevLon)
		prevLat, prevLon = lat, lon
	}

	return sb.String()
}

func encodeDelta(sb *strings.Builder, delta int) {
	v := delta << 1
	if delta < 0 {
		v = ^v
	}
	for v >= 0x20 {
		sb.WriteByte(byte((0x20 | (v & 0x1f)) + 63))
		v >>= 5
	}
	sb.WriteByte(byte(v + 63))
}

func round(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
