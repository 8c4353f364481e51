package dto

type CoordinateRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type PlaceRequest struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type LegRequest struct {
	LegID       string       `json:"leg_id"`
	OrderNumber string       `json:"order_number"`
	Restaurant  PlaceRequest `json:"restaurant"`
	Customer    PlaceRequest `json:"customer"`
}

// RouteRequest is the JSON body for POST /routes. Legs may be omitted, in
// which case the pending legs from the repository are routed.
type RouteRequest struct {
	Driver CoordinateRequest `json:"driver"`
	Legs   []LegRequest      `json:"legs"`
}

type RouteStopResponse struct {
	LegID       string  `json:"leg_id"`
	OrderNumber string  `json:"order_number"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// RouteResponse mirrors domain.RouteResult. Path points are [lat, lon]
// pairs in traversal order.
type RouteResponse struct {
	Restaurants      []RouteStopResponse `json:"restaurants"`
	Customers        []RouteStopResponse `json:"customers"`
	SkippedLegIDs    []string            `json:"skipped_leg_ids,omitempty"`
	Path             [][2]float64        `json:"path"`
	TotalDistanceKm  float64             `json:"total_distance_km"`
	TotalDurationMin float64             `json:"total_duration_min"`
	Degraded         bool                `json:"degraded"`
}
