package services

import (
	"context"
	"errors"
	"math"
	"time"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/geo"
	"courier-route-service/internal/observability"
	"courier-route-service/internal/ports"
)

// Validation errors. These are the only fatal outcomes of a route
// computation; routing-service failures degrade per segment instead.
var (
	ErrEmptyLegBatch           = errors.New("compute route: leg batch must be non-empty")
	ErrInvalidDriverCoordinate = errors.New("compute route: driver coordinate is invalid")
	ErrNoRoutableLegs          = errors.New("compute route: no leg in the batch carries usable coordinates")
)

// ComputeRouteOptions tunes the segment-stitching phase. The zero value
// selects the defaults below.
type ComputeRouteOptions struct {
	// SegmentTimeout is the hard deadline per external routing call.
	SegmentTimeout time.Duration
	// RequestDelay is a fixed pause between successive external calls to
	// stay under routing-service rate limits. It is a politeness policy,
	// not a correctness requirement; a negative value disables it.
	RequestDelay time.Duration
	// FallbackSpeedMps estimates the duration of straight-line fallback
	// segments, which carry no service-reported duration.
	FallbackSpeedMps float64
}

const (
	defaultSegmentTimeout   = 8 * time.Second
	defaultRequestDelay     = 100 * time.Millisecond
	defaultFallbackSpeedMps = 10.0
)

func (o ComputeRouteOptions) withDefaults() ComputeRouteOptions {
	if o.SegmentTimeout <= 0 {
		o.SegmentTimeout = defaultSegmentTimeout
	}
	if o.RequestDelay == 0 {
		o.RequestDelay = defaultRequestDelay
	} else if o.RequestDelay < 0 {
		o.RequestDelay = 0
	}
	if o.FallbackSpeedMps <= 0 {
		o.FallbackSpeedMps = defaultFallbackSpeedMps
	}
	return o
}

// ComputeRoute is the single entry point of the optimizer: it orders the
// batch of delivery legs from the driver's position, stitches a drivable
// path across the resulting waypoint sequence, and returns the combined
// result. It holds no state between calls and may be re-invoked whenever
// the pending-delivery snapshot changes.
//
// A failed segment fetch is replaced by a straight line and surfaced only
// through AnyDegraded; even a fully unreachable routing service yields a
// valid all-straight-line route. Cancelling ctx aborts the remaining
// segment fetches and returns the context error.
func ComputeRoute(
	ctx context.Context,
	driver domain.Coordinate,
	legs []domain.DeliveryLeg,
	router ports.SegmentRouter,
	opts ComputeRouteOptions,
) (*domain.RouteResult, error) {
	if !driver.Valid() {
		return nil, ErrInvalidDriverCoordinate
	}
	if len(legs) == 0 {
		return nil, ErrEmptyLegBatch
	}

	opts = opts.withDefaults()

	order := OrderLegs(driver, legs)
	if len(order.Restaurants) == 0 {
		return nil, ErrNoRoutableLegs
	}

	waypoints := buildWaypoints(driver, order)

	path := make([]domain.Coordinate, 0, 2*len(waypoints))
	var totalMeters, totalSeconds float64
	anyDegraded := false

	for i := 1; i < len(waypoints); i++ {
		if i > 1 {
			if err := wait(ctx, opts.RequestDelay); err != nil {
				return nil, err
			}
		}

		from := waypoints[i-1].Coord
		to := waypoints[i].Coord

		seg, err := fetchSegment(ctx, router, from, to, opts.SegmentTimeout)
		if err != nil {
			// The caller abandoned the computation; stop instead of
			// stitching a result nobody will consume.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			seg = straightLineSegment(from, to, opts.FallbackSpeedMps)
			observability.SegmentsDegradedTotal.Inc()
		}

		path = appendSegmentPath(path, seg.Path)
		totalMeters += seg.DistanceMeters
		totalSeconds += seg.DurationSeconds
		anyDegraded = anyDegraded || seg.Degraded
	}

	observability.RoutesComputedTotal.Inc()

	return &domain.RouteResult{
		RestaurantLegs:   order.Restaurants,
		CustomerLegs:     order.Customers,
		SkippedLegIDs:    order.SkippedLegIDs,
		Path:             path,
		TotalDistanceKm:  totalMeters / 1000,
		TotalDurationMin: math.Ceil(totalSeconds / 60),
		AnyDegraded:      anyDegraded,
	}, nil
}

// buildWaypoints flattens the leg order into the traversal sequence:
// driver, then every restaurant in pickup order, then every customer in
// dropoff order.
func buildWaypoints(driver domain.Coordinate, order LegOrder) []domain.Waypoint {
	waypoints := make([]domain.Waypoint, 0, 1+len(order.Restaurants)+len(order.Customers))
	waypoints = append(waypoints, domain.Waypoint{Role: domain.RoleDriver, Coord: driver})
	for _, leg := range order.Restaurants {
		waypoints = append(waypoints, domain.Waypoint{
			Role:  domain.RoleRestaurant,
			LegID: leg.ID,
			Coord: leg.Restaurant.Coord,
		})
	}
	for _, leg := range order.Customers {
		waypoints = append(waypoints, domain.Waypoint{
			Role:  domain.RoleCustomer,
			LegID: leg.ID,
			Coord: leg.Customer.Coord,
		})
	}
	return waypoints
}

func fetchSegment(
	ctx context.Context,
	router ports.SegmentRouter,
	from, to domain.Coordinate,
	timeout time.Duration,
) (domain.RouteSegment, error) {
	segCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	seg, err := router.RouteSegment(segCtx, from, to)
	observability.SegmentFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.RouteSegment{}, err
	}
	return seg, nil
}

// straightLineSegment substitutes a two-point straight line when a segment
// could not be routed externally. Duration is estimated from the haversine
// distance at the configured average speed.
func straightLineSegment(from, to domain.Coordinate, speedMps float64) domain.RouteSegment {
	meters := geo.DistanceMeters(from, to)
	return domain.RouteSegment{
		Path:            []domain.Coordinate{from, to},
		DistanceMeters:  meters,
		DurationSeconds: meters / speedMps,
		Degraded:        true,
	}
}

// appendSegmentPath concatenates a segment onto the assembled path. The
// segment's first point duplicates the shared waypoint already at the tail
// of the path, so it is dropped to avoid zero-length path steps.
func appendSegmentPath(path, segment []domain.Coordinate) []domain.Coordinate {
	if len(segment) == 0 {
		return path
	}
	if len(path) > 0 && path[len(path)-1] == segment[0] {
		segment = segment[1:]
	}
	return append(path, segment...)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
