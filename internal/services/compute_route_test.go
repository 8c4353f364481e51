package services

import (
	"context"
	"errors"
	"testing"

	"courier-route-service/internal/adapters/routing"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/geo"
)

// stubRouter drives ComputeRoute without an external routing service.
type stubRouter struct {
	route func(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, error)
	calls int
}

func (s *stubRouter) RouteSegment(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, error) {
	s.calls++
	return s.route(ctx, from, to)
}

// directSegment reports the haversine line as if it were a routed path.
func directSegment(from, to domain.Coordinate) (domain.RouteSegment, error) {
	meters := geo.DistanceMeters(from, to)
	return domain.RouteSegment{
		Path:            []domain.Coordinate{from, to},
		DistanceMeters:  meters,
		DurationSeconds: meters / 12,
	}, nil
}

var noDelay = ComputeRouteOptions{RequestDelay: -1}

func TestComputeRouteValidation(t *testing.T) {
	router := &stubRouter{route: func(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, error) {
		return directSegment(from, to)
	}}

	if _, err := ComputeRoute(context.Background(), testDriver, nil, router, noDelay); !errors.Is(err, ErrEmptyLegBatch) {
		t.Fatalf("empty batch: err = %v, want ErrEmptyLegBatch", err)
	}

	badDriver := domain.Coordinate{Lat: 120, Lon: 81.19}
	if _, err := ComputeRoute(context.Background(), badDriver, []domain.DeliveryLeg{legA()}, router, noDelay); !errors.Is(err, ErrInvalidDriverCoordinate) {
		t.Fatalf("bad driver: err = %v, want ErrInvalidDriverCoordinate", err)
	}

	unroutable := legA()
	unroutable.Customer.Coord = domain.Coordinate{Lat: 91, Lon: 0}
	if _, err := ComputeRoute(context.Background(), testDriver, []domain.DeliveryLeg{unroutable}, router, noDelay); !errors.Is(err, ErrNoRoutableLegs) {
		t.Fatalf("all skipped: err = %v, want ErrNoRoutableLegs", err)
	}

	if router.calls != 0 {
		t.Fatalf("validation failures issued %d routing calls", router.calls)
	}
}

func TestComputeRouteHappyPath(t *testing.T) {
	router := &stubRouter{route: func(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, error) {
		return directSegment(from, to)
	}}

	res, err := ComputeRoute(context.Background(), testDriver, []domain.DeliveryLeg{legA(), legB()}, router, noDelay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// driver -> restB -> restA -> custA -> custB: four segments.
	if router.calls != 4 {
		t.Fatalf("routing calls = %d, want 4", router.calls)
	}
	if res.AnyDegraded {
		t.Fatal("AnyDegraded = true with a healthy router")
	}
	if res.Path[0] != testDriver {
		t.Fatalf("path starts at %+v, want driver position", res.Path[0])
	}
	last := res.Path[len(res.Path)-1]
	if last != legB().Customer.Coord {
		t.Fatalf("path ends at %+v, want final customer", last)
	}
	if res.TotalDistanceKm <= 0 || res.TotalDurationMin <= 0 {
		t.Fatalf("aggregates not positive: %f km, %f min", res.TotalDistanceKm, res.TotalDurationMin)
	}
}

func TestComputeRouteAllSegmentsDegraded(t *testing.T) {
	router := &stubRouter{route: func(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, error) {
		return domain.RouteSegment{}, errors.New("routing service unavailable")
	}}

	res, err := ComputeRoute(context.Background(), testDriver, []domain.DeliveryLeg{legA(), legB()}, router, noDelay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.AnyDegraded {
		t.Fatal("AnyDegraded = false, want true")
	}
	// Each of the four segments contributes a two-point straight line, with
	// shared waypoints deduplicated: five points total.
	if len(res.Path) != 5 {
		t.Fatalf("path has %d points, want 5", len(res.Path))
	}
	if res.Path[0] != testDriver {
		t.Fatalf("path starts at %+v, want driver position", res.Path[0])
	}
	if res.TotalDistanceKm <= 0 || res.TotalDurationMin <= 0 {
		t.Fatalf("degraded route lost its aggregates: %f km, %f min", res.TotalDistanceKm, res.TotalDurationMin)
	}
}

func TestComputeRouteNoDuplicateJoinPoints(t *testing.T) {
	router := &stubRouter{route: func(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, error) {
		mid := domain.Coordinate{Lat: (from.Lat + to.Lat) / 2, Lon: (from.Lon + to.Lon) / 2}
		return domain.RouteSegment{
			Path:            []domain.Coordinate{from, mid, to},
			DistanceMeters:  geo.DistanceMeters(from, to),
			DurationSeconds: 60,
		}, nil
	}}

	res, err := ComputeRoute(context.Background(), testDriver, []domain.DeliveryLeg{legA(), legB()}, router, noDelay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(res.Path); i++ {
		if res.Path[i] == res.Path[i-1] {
			t.Fatalf("duplicate consecutive path point at %d: %+v", i, res.Path[i])
		}
	}
	// Four three-point segments joined at shared waypoints: 3 + 3*2 points.
	if len(res.Path) != 9 {
		t.Fatalf("path has %d points, want 9", len(res.Path))
	}
}

func TestComputeRouteAggregates(t *testing.T) {
	router := &stubRouter{route: func(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, error) {
		return domain.RouteSegment{
			Path:            []domain.Coordinate{from, to},
			DistanceMeters:  1250,
			DurationSeconds: 65,
		}, nil
	}}

	// Single leg: driver -> restaurant -> customer, two segments.
	res, err := ComputeRoute(context.Background(), testDriver, []domain.DeliveryLeg{legA()}, router, noDelay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalDistanceKm != 2.5 {
		t.Fatalf("TotalDistanceKm = %f, want 2.5", res.TotalDistanceKm)
	}
	// 130 seconds rounds up to 3 minutes.
	if res.TotalDurationMin != 3 {
		t.Fatalf("TotalDurationMin = %f, want 3", res.TotalDurationMin)
	}
}

func TestComputeRouteDeterminism(t *testing.T) {
	router := &routing.MockSegmentRouter{SpeedMps: 12}
	legs := []domain.DeliveryLeg{legA(), legB()}

	first, err := ComputeRoute(context.Background(), testDriver, legs, router, noDelay)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := ComputeRoute(context.Background(), testDriver, legs, router, noDelay)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(first.Path) != len(second.Path) {
		t.Fatalf("path lengths differ: %d vs %d", len(first.Path), len(second.Path))
	}
	for i := range first.Path {
		if first.Path[i] != second.Path[i] {
			t.Fatalf("paths diverge at %d: %+v vs %+v", i, first.Path[i], second.Path[i])
		}
	}
	for i := range first.RestaurantLegs {
		if first.RestaurantLegs[i].ID != second.RestaurantLegs[i].ID {
			t.Fatalf("pickup order differs at %d", i)
		}
	}
	if first.TotalDistanceKm != second.TotalDistanceKm || first.TotalDurationMin != second.TotalDurationMin {
		t.Fatal("aggregates differ between identical runs")
	}
}

func TestComputeRouteCancellation(t *testing.T) {
	router := &stubRouter{route: func(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, error) {
		<-ctx.Done()
		return domain.RouteSegment{}, ctx.Err()
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComputeRoute(ctx, testDriver, []domain.DeliveryLeg{legA()}, router, noDelay)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
