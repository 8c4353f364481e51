package domain

// Place is a named location on the map (a restaurant or a customer address).
type Place struct {
	Name  string
	Coord Coordinate
}

// DeliveryLeg represents one order's pickup/delivery pair: food is picked up
// at the restaurant and dropped off at the customer. Legs arrive as a batch
// snapshot from the caller and are treated as immutable for the duration of
// one ordering+routing call.
type DeliveryLeg struct {
	ID          string
	OrderNumber string
	Restaurant  Place
	Customer    Place
}

// Routable reports whether both endpoints of the leg carry usable
// coordinates. Legs failing this check are skipped during ordering and
// reported back to the caller rather than failing the batch.
func (l DeliveryLeg) Routable() bool {
	return l.Restaurant.Coord.Valid() && l.Customer.Coord.Valid()
}

// WaypointRole tags a waypoint with the kind of stop it represents.
type WaypointRole string

const (
	RoleDriver     WaypointRole = "driver"
	RoleRestaurant WaypointRole = "restaurant"
	RoleCustomer   WaypointRole = "customer"
)

// Waypoint is one stop in the final visitation sequence. LegID is empty for
// the driver waypoint and otherwise refers to the originating DeliveryLeg.
type Waypoint struct {
	Role  WaypointRole
	LegID string
	Coord Coordinate
}
