package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/platform/obs"
)

// SQLSegmentCache is a SQL-backed cache for routed segments keyed by their
// directed endpoint pair. Road geometry between two fixed coordinates is
// effectively immutable, so rows have no expiry.
type SQLSegmentCache struct {
	DB *sql.DB
}

func NewSQLSegmentCache(db *sql.DB) *SQLSegmentCache {
	return &SQLSegmentCache{DB: db}
}

// Fetch a cached segment for one endpoint pair.
func (s *SQLSegmentCache) Get(
	ctx context.Context,
	from, to domain.Coordinate,
) (_ domain.RouteSegment, _ bool, err error) {
	defer obs.Time(ctx, "segment.cache.Get")(&err)

	if s.DB == nil {
		return domain.RouteSegment{}, false, errors.New("segment cache: db is nil")
	}

	q := `
	SELECT distance_meters, duration_seconds, geometry
	FROM route_segment_cache
	WHERE segment_key = $1;
	`

	var meters, seconds float64
	var geometry []byte
	row := s.DB.QueryRowContext(ctx, q, segmentKey(from, to))
	if err := row.Scan(&meters, &seconds, &geometry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RouteSegment{}, false, nil
		}
		return domain.RouteSegment{}, false, fmt.Errorf("get segment cache: scan row: %w", err)
	}

	path, err := decodeGeometry(geometry)
	if err != nil {
		return domain.RouteSegment{}, false, fmt.Errorf("get segment cache: %w", err)
	}

	return domain.RouteSegment{
		Path:            path,
		DistanceMeters:  meters,
		DurationSeconds: seconds,
	}, true, nil
}

// Store a routed segment. Degraded segments are never persisted; they carry
// no real geometry and would mask later recoveries of the routing service.
func (s *SQLSegmentCache) Put(
	ctx context.Context,
	from, to domain.Coordinate,
	seg domain.RouteSegment,
) error {
	if s.DB == nil {
		return errors.New("segment cache: db is nil")
	}

	if seg.Degraded {
		return nil
	}

	geometry, err := encodeGeometry(seg.Path)
	if err != nil {
		return fmt.Errorf("insert segment cache: encode geometry: %w", err)
	}

	q := `
	INSERT INTO route_segment_cache (segment_key, distance_meters, duration_seconds, geometry)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (segment_key) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		geometry = EXCLUDED.geometry;
	`

	if _, err := s.DB.ExecContext(ctx, q, segmentKey(from, to), seg.DistanceMeters, seg.DurationSeconds, geometry); err != nil {
		return fmt.Errorf("insert segment cache: %w", err)
	}

	return nil
}
