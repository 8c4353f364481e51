package ports

import (
	"context"

	"courier-route-service/internal/domain"
)

// Port: a boundary for retrieving pending delivery legs from a data source.
type LegRepository interface {
	// Retrieve all pending pickup/delivery legs available for routing.
	ListPendingLegs(ctx context.Context) ([]domain.DeliveryLeg, error)
}
