package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courier-route-service/internal/domain"
)

// SQL-backed implementation of the LegRepository port.
type SQLLegRepository struct{ DB *sql.DB }

func NewSQLLegRepository(db *sql.DB) *SQLLegRepository {
	return &SQLLegRepository{DB: db}
}

// Return all pending pickup/delivery legs, in stable leg-id order.
func (s *SQLLegRepository) ListPendingLegs(ctx context.Context) ([]domain.DeliveryLeg, error) {
	if s.DB == nil {
		return nil, errors.New("sql leg repository: DB is nil")
	}

	query := `
	SELECT
		leg_id,
		order_number,
		restaurant_name,
		restaurant_lat,
		restaurant_lon,
		customer_name,
		customer_lat,
		customer_lon
	FROM delivery_legs
	WHERE status = 'pending'
	ORDER BY leg_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending legs: query delivery_legs table: %w", err)
	}
	defer rows.Close()

	legs := make([]domain.DeliveryLeg, 0, 64)
	for rows.Next() {
		var leg domain.DeliveryLeg
		err := rows.Scan(
			&leg.ID,
			&leg.OrderNumber,
			&leg.Restaurant.Name,
			&leg.Restaurant.Coord.Lat,
			&leg.Restaurant.Coord.Lon,
			&leg.Customer.Name,
			&leg.Customer.Coord.Lat,
			&leg.Customer.Coord.Lon,
		)
		if err != nil {
			return nil, fmt.Errorf("list pending legs: scan row: %w", err)
		}
		legs = append(legs, leg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending legs: row iteration: %w", err)
	}

	return legs, nil
}
