package services

import (
	"math"
	"testing"

	"courier-route-service/internal/domain"
)

var testDriver = domain.Coordinate{Lat: 8.50, Lon: 81.19}

func legA() domain.DeliveryLeg {
	return domain.DeliveryLeg{
		ID:          "leg-a",
		OrderNumber: "1001",
		Restaurant:  domain.Place{Name: "Spice Garden", Coord: domain.Coordinate{Lat: 8.55, Lon: 81.20}},
		Customer:    domain.Place{Name: "Nimal", Coord: domain.Coordinate{Lat: 8.60, Lon: 81.25}},
	}
}

func legB() domain.DeliveryLeg {
	return domain.DeliveryLeg{
		ID:          "leg-b",
		OrderNumber: "1002",
		Restaurant:  domain.Place{Name: "Ocean View", Coord: domain.Coordinate{Lat: 8.40, Lon: 81.10}},
		Customer:    domain.Place{Name: "Kamala", Coord: domain.Coordinate{Lat: 8.42, Lon: 81.12}},
	}
}

func TestOrderLegsEmptyBatch(t *testing.T) {
	order := OrderLegs(testDriver, nil)
	if len(order.Restaurants) != 0 || len(order.Customers) != 0 || len(order.SkippedLegIDs) != 0 {
		t.Fatalf("empty batch produced non-empty order: %+v", order)
	}
}

func TestOrderLegsSingleLeg(t *testing.T) {
	drivers := []domain.Coordinate{
		testDriver,
		{Lat: 51.5074, Lon: -0.1278},
		{Lat: -33.8688, Lon: 151.2093},
	}
	for _, driver := range drivers {
		order := OrderLegs(driver, []domain.DeliveryLeg{legA()})
		if len(order.Restaurants) != 1 || order.Restaurants[0].ID != "leg-a" {
			t.Fatalf("driver %+v: restaurants = %+v, want single leg-a", driver, order.Restaurants)
		}
		if len(order.Customers) != 1 || order.Customers[0].ID != "leg-a" {
			t.Fatalf("driver %+v: customers = %+v, want single leg-a", driver, order.Customers)
		}
	}
}

func TestOrderLegsTwoLegScenario(t *testing.T) {
	// Leg B's pickup span (driver->restB ~14.9km + restB->custB ~3.1km)
	// exceeds leg A's (~5.7km + ~7.8km), so B is picked up first. The last
	// pickup is A's restaurant, from which A's customer (~7.8km) is nearer
	// than B's (~16.9km), so A is dropped off first.
	order := OrderLegs(testDriver, []domain.DeliveryLeg{legA(), legB()})

	if len(order.Restaurants) != 2 || order.Restaurants[0].ID != "leg-b" || order.Restaurants[1].ID != "leg-a" {
		t.Fatalf("pickup order = %v, want [leg-b leg-a]", legIDs(order.Restaurants))
	}
	if len(order.Customers) != 2 || order.Customers[0].ID != "leg-a" || order.Customers[1].ID != "leg-b" {
		t.Fatalf("dropoff order = %v, want [leg-a leg-b]", legIDs(order.Customers))
	}
	if len(order.SkippedLegIDs) != 0 {
		t.Fatalf("unexpected skipped legs: %v", order.SkippedLegIDs)
	}
}

func TestOrderLegsSkipsUnroutable(t *testing.T) {
	broken := domain.DeliveryLeg{
		ID:         "leg-broken",
		Restaurant: domain.Place{Name: "Nowhere", Coord: domain.Coordinate{Lat: math.NaN(), Lon: 81.0}},
		Customer:   domain.Place{Name: "Nobody", Coord: domain.Coordinate{Lat: 8.45, Lon: 81.15}},
	}

	order := OrderLegs(testDriver, []domain.DeliveryLeg{legA(), broken, legB()})

	if len(order.SkippedLegIDs) != 1 || order.SkippedLegIDs[0] != "leg-broken" {
		t.Fatalf("skipped = %v, want [leg-broken]", order.SkippedLegIDs)
	}
	for _, leg := range order.Restaurants {
		if leg.ID == "leg-broken" {
			t.Fatal("unroutable leg present in pickup order")
		}
	}
	for _, leg := range order.Customers {
		if leg.ID == "leg-broken" {
			t.Fatal("unroutable leg present in dropoff order")
		}
	}
	if len(order.Restaurants) != 2 || len(order.Customers) != 2 {
		t.Fatalf("expected 2 routable legs in each phase, got %d/%d", len(order.Restaurants), len(order.Customers))
	}
}

func TestOrderLegsStableOnEqualSpans(t *testing.T) {
	// Identical geometry with distinct IDs: equal spans must keep batch order.
	first := legA()
	second := legA()
	second.ID = "leg-a2"

	order := OrderLegs(testDriver, []domain.DeliveryLeg{first, second})

	if order.Restaurants[0].ID != "leg-a" || order.Restaurants[1].ID != "leg-a2" {
		t.Fatalf("equal spans reordered pickups: %v", legIDs(order.Restaurants))
	}
	if order.Customers[0].ID != "leg-a" || order.Customers[1].ID != "leg-a2" {
		t.Fatalf("equal distances reordered dropoffs: %v", legIDs(order.Customers))
	}
}

func TestOrderLegsDeterministic(t *testing.T) {
	legs := []domain.DeliveryLeg{legA(), legB()}
	first := OrderLegs(testDriver, legs)
	second := OrderLegs(testDriver, legs)

	if len(first.Restaurants) != len(second.Restaurants) {
		t.Fatal("pickup order length differs between runs")
	}
	for i := range first.Restaurants {
		if first.Restaurants[i].ID != second.Restaurants[i].ID {
			t.Fatalf("pickup order differs at %d: %s vs %s", i, first.Restaurants[i].ID, second.Restaurants[i].ID)
		}
	}
	for i := range first.Customers {
		if first.Customers[i].ID != second.Customers[i].ID {
			t.Fatalf("dropoff order differs at %d: %s vs %s", i, first.Customers[i].ID, second.Customers[i].ID)
		}
	}
}

func legIDs(legs []domain.DeliveryLeg) []string {
	ids := make([]string, 0, len(legs))
	for _, l := range legs {
		ids = append(ids, l.ID)
	}
	return ids
}
