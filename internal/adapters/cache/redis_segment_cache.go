package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"courier-route-service/internal/domain"
)

// RedisSegmentCache caches routed segments in Redis with a TTL. It suits
// deployments where several route-service replicas share one cache.
type RedisSegmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSegmentCache(addr, password string, ttl time.Duration) *RedisSegmentCache {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &RedisSegmentCache{client: c, ttl: ttl}
}

type redisSegmentPayload struct {
	Geometry        json.RawMessage `json:"geometry"`
	DistanceMeters  float64         `json:"distance_meters"`
	DurationSeconds float64         `json:"duration_seconds"`
}

func redisKey(from, to domain.Coordinate) string {
	return "segment:" + segmentKey(from, to)
}

func (r *RedisSegmentCache) Get(
	ctx context.Context,
	from, to domain.Coordinate,
) (domain.RouteSegment, bool, error) {
	raw, err := r.client.Get(ctx, redisKey(from, to)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.RouteSegment{}, false, nil
		}
		return domain.RouteSegment{}, false, fmt.Errorf("get segment cache: %w", err)
	}

	var payload redisSegmentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.RouteSegment{}, false, fmt.Errorf("get segment cache: decode payload: %w", err)
	}

	path, err := decodeGeometry(payload.Geometry)
	if err != nil {
		return domain.RouteSegment{}, false, fmt.Errorf("get segment cache: %w", err)
	}

	return domain.RouteSegment{
		Path:            path,
		DistanceMeters:  payload.DistanceMeters,
		DurationSeconds: payload.DurationSeconds,
	}, true, nil
}

// Store a routed segment. Degraded segments are never persisted.
func (r *RedisSegmentCache) Put(
	ctx context.Context,
	from, to domain.Coordinate,
	seg domain.RouteSegment,
) error {
	if seg.Degraded {
		return nil
	}

	geometry, err := encodeGeometry(seg.Path)
	if err != nil {
		return fmt.Errorf("insert segment cache: encode geometry: %w", err)
	}

	payload, err := json.Marshal(redisSegmentPayload{
		Geometry:        geometry,
		DistanceMeters:  seg.DistanceMeters,
		DurationSeconds: seg.DurationSeconds,
	})
	if err != nil {
		return fmt.Errorf("insert segment cache: encode payload: %w", err)
	}

	if err := r.client.Set(ctx, redisKey(from, to), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert segment cache: %w", err)
	}

	return nil
}
