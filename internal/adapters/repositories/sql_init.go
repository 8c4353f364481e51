package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLegsQuery := `
	CREATE TABLE IF NOT EXISTS delivery_legs (
		leg_id TEXT PRIMARY KEY,
		order_number TEXT NOT NULL,
		restaurant_name TEXT NOT NULL,
		restaurant_lat DOUBLE PRECISION NOT NULL,
		restaurant_lon DOUBLE PRECISION NOT NULL,
		customer_name TEXT NOT NULL,
		customer_lat DOUBLE PRECISION NOT NULL,
		customer_lon DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending'
	);
	`

	createSegmentCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_segment_cache (
		segment_key TEXT PRIMARY KEY,
		distance_meters DOUBLE PRECISION NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL,
		geometry TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_delivery_legs_status
	ON delivery_legs(status);
	`

	statements := []string{
		createLegsQuery,
		createSegmentCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type placeSeed struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type LegSeed struct {
	LegID       string    `json:"leg_id"`
	OrderNumber string    `json:"order_number"`
	Restaurant  placeSeed `json:"restaurant"`
	Customer    placeSeed `json:"customer"`
}

// Populate the database with pending delivery legs from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed legs: read %q: %w", jsonPath, err)
	}

	var data []LegSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed legs: parse json: %w", err)
	}

	rows := make([]LegSeed, 0, len(data))
	for i, item := range data {
		legID := strings.TrimSpace(item.LegID)
		if legID == "" {
			return fmt.Errorf("seed legs: item at index %d: leg_id cannot be empty", i+1)
		}
		item.LegID = legID
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed legs: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO delivery_legs (
		leg_id,
		order_number,
		restaurant_name,
		restaurant_lat,
		restaurant_lon,
		customer_name,
		customer_lat,
		customer_lon,
		status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending')
	ON CONFLICT (leg_id) DO UPDATE
	SET order_number = EXCLUDED.order_number,
		restaurant_name = EXCLUDED.restaurant_name,
		restaurant_lat = EXCLUDED.restaurant_lat,
		restaurant_lon = EXCLUDED.restaurant_lon,
		customer_name = EXCLUDED.customer_name,
		customer_lat = EXCLUDED.customer_lat,
		customer_lon = EXCLUDED.customer_lon;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed legs: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range rows {
		_, err := stmt.Exec(
			l.LegID,
			l.OrderNumber,
			l.Restaurant.Name,
			l.Restaurant.Lat,
			l.Restaurant.Lon,
			l.Customer.Name,
			l.Customer.Lat,
			l.Customer.Lon,
		)
		if err != nil {
			return fmt.Errorf("seed legs: insert leg_id=%q: %w", l.LegID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed legs: commit tx: %w", err)
	}

	return nil
}
