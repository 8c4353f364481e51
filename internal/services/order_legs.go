package services

import (
	"slices"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/geo"
)

// LegOrder is the visitation order produced for one batch of delivery legs.
// Restaurants holds the pickup order, Customers the dropoff order; every
// restaurant is visited before any customer. SkippedLegIDs lists legs that
// were excluded because an endpoint carried no usable coordinate.
type LegOrder struct {
	Restaurants   []domain.DeliveryLeg
	Customers     []domain.DeliveryLeg
	SkippedLegIDs []string
}

// OrderLegs decides the visitation order for a batch of delivery legs
// starting from the driver's position, in two independent phases.
//
// Phase 1 (pickups): legs are sorted descending by
// dist(driver, restaurant) + dist(restaurant, customer), so orders whose
// full pickup-to-dropoff span is longest are collected first and their
// delivery clock starts as early as possible. The sort is stable; equal
// spans keep their original batch order.
//
// Phase 2 (dropoffs): classic nearest-neighbor over the customers, starting
// from the last restaurant of phase 1 (the driver's position once all
// pickups are done). Ties go to the earliest batch index encountered.
//
// Both phases are greedy heuristics, not globally optimal, and are
// deterministic for identical input. A batch of 0 or 1 routable legs passes
// through unchanged.
func OrderLegs(driver domain.Coordinate, legs []domain.DeliveryLeg) LegOrder {
	order := LegOrder{}

	routable := make([]domain.DeliveryLeg, 0, len(legs))
	for _, leg := range legs {
		if !leg.Routable() {
			order.SkippedLegIDs = append(order.SkippedLegIDs, leg.ID)
			continue
		}
		routable = append(routable, leg)
	}

	if len(routable) <= 1 {
		order.Restaurants = routable
		order.Customers = slices.Clone(routable)
		return order
	}

	order.Restaurants = orderPickups(driver, routable)
	// After the final pickup the driver stands at the last restaurant.
	start := order.Restaurants[len(order.Restaurants)-1].Restaurant.Coord
	order.Customers = orderDropoffs(start, routable)

	return order
}

func orderPickups(driver domain.Coordinate, legs []domain.DeliveryLeg) []domain.DeliveryLeg {
	type spannedLeg struct {
		leg  domain.DeliveryLeg
		span float64
	}

	spanned := make([]spannedLeg, 0, len(legs))
	for _, leg := range legs {
		span := geo.DistanceMeters(driver, leg.Restaurant.Coord) +
			geo.DistanceMeters(leg.Restaurant.Coord, leg.Customer.Coord)
		spanned = append(spanned, spannedLeg{leg: leg, span: span})
	}

	slices.SortStableFunc(spanned, func(a, b spannedLeg) int {
		if a.span > b.span {
			return -1
		}
		if a.span < b.span {
			return 1
		}
		return 0
	})

	out := make([]domain.DeliveryLeg, 0, len(spanned))
	for _, s := range spanned {
		out = append(out, s.leg)
	}
	return out
}

func orderDropoffs(start domain.Coordinate, legs []domain.DeliveryLeg) []domain.DeliveryLeg {
	remaining := slices.Clone(legs)
	out := make([]domain.DeliveryLeg, 0, len(legs))
	current := start

	for len(remaining) > 0 {
		best := 0
		bestDist := geo.DistanceMeters(current, remaining[0].Customer.Coord)
		// Strict < keeps the first-encountered index on ties.
		for i := 1; i < len(remaining); i++ {
			d := geo.DistanceMeters(current, remaining[i].Customer.Coord)
			if d < bestDist {
				best = i
				bestDist = d
			}
		}

		out = append(out, remaining[best])
		current = remaining[best].Customer.Coord
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return out
}
