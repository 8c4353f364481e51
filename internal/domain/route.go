package domain

// RouteSegment is the drivable path between two consecutive waypoints.
// Degraded means the external routing service could not produce a route and
// a straight line between the two waypoints was substituted.
type RouteSegment struct {
	Path            []Coordinate
	DistanceMeters  float64
	DurationSeconds float64
	Degraded        bool
}

// RouteResult is the final output of one route computation. The leg slices
// are in visit order: all restaurants are visited before any customer.
// It is immutable planning data and contains no side effects.
type RouteResult struct {
	RestaurantLegs   []DeliveryLeg
	CustomerLegs     []DeliveryLeg
	SkippedLegIDs    []string
	Path             []Coordinate
	TotalDistanceKm  float64
	TotalDurationMin float64
	AnyDegraded      bool
}
