package ports

import (
	"context"

	"courier-route-service/internal/domain"
)

// SegmentRouter is the boundary to an external routing engine. One call
// produces the drivable path between two waypoints together with its
// reported distance and duration.
//
// Implementations must honor ctx cancellation and deadlines: one
// unresponsive routing call must not stall a whole batch beyond the
// caller's per-segment deadline.
type SegmentRouter interface {
	// RouteSegment returns the drivable path from one coordinate to the
	// next. A returned error means the caller should fall back to a
	// straight line for this segment; it never aborts the batch.
	RouteSegment(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, error)
}
