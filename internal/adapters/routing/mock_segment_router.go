package routing

import (
	"context"
	"errors"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/geo"
)

// MockSegmentRouter serves tests and local runs without a routing engine.
// It reports each segment as the straight line between its endpoints at the
// configured speed, or fails every call when Unavailable is set.
type MockSegmentRouter struct {
	SpeedMps    float64
	Unavailable bool
}

func (m *MockSegmentRouter) RouteSegment(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, error) {
	if m.Unavailable {
		return domain.RouteSegment{}, errors.New("mock segment router: unavailable")
	}
	if err := ctx.Err(); err != nil {
		return domain.RouteSegment{}, err
	}

	speed := m.SpeedMps
	if speed <= 0 {
		speed = 10
	}

	meters := geo.DistanceMeters(from, to)
	return domain.RouteSegment{
		Path:            []domain.Coordinate{from, to},
		DistanceMeters:  meters,
		DurationSeconds: meters / speed,
	}, nil
}
