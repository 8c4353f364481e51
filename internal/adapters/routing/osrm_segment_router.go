package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/platform/obs"
	"courier-route-service/internal/polyline"
)

// GeometryFormat selects how the routing engine encodes route geometry.
type GeometryFormat string

const (
	// GeometryGeoJSON requests raw [lon, lat] coordinate arrays.
	GeometryGeoJSON GeometryFormat = "geojson"
	// GeometryPolyline requests the compact 1e-5 encoded-polyline string.
	GeometryPolyline GeometryFormat = "polyline"
)

// SegmentCache stores routed segments keyed by their endpoint pair. Road
// geometry between two fixed coordinates is effectively immutable, so the
// router consults the cache before issuing external calls.
type SegmentCache interface {
	Get(ctx context.Context, from, to domain.Coordinate) (domain.RouteSegment, bool, error)
	Put(ctx context.Context, from, to domain.Coordinate, seg domain.RouteSegment) error
}

// OSRMSegmentRouter implements ports.SegmentRouter against an
// OSRM-compatible /route/v1 HTTP endpoint.
//
// It coordinates:
//   - Per-segment routing calls with retry/backoff
//   - Geometry parsing (GeoJSON coordinate arrays or encoded polylines)
//   - An optional persistent segment cache
//
// The router is safe for concurrent use.
type OSRMSegmentRouter struct {
	session  *http.Client
	baseURL  string
	profile  string
	geometry GeometryFormat
	cache    SegmentCache
}

func NewOSRMSegmentRouter(baseURL string, geometry GeometryFormat, cache SegmentCache) (*OSRMSegmentRouter, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base URL is empty")
	}

	switch geometry {
	case "":
		geometry = GeometryGeoJSON
	case GeometryGeoJSON, GeometryPolyline:
	default:
		return nil, fmt.Errorf("unsupported geometry format %q", geometry)
	}

	return &OSRMSegmentRouter{
		session:  &http.Client{Timeout: 10 * time.Second},
		baseURL:  baseURL,
		profile:  "driving",
		geometry: geometry,
		cache:    cache,
	}, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64         `json:"distance"`
		Duration float64         `json:"duration"`
		Geometry json.RawMessage `json:"geometry"`
	} `json:"routes"`
}

type geoJSONGeometry struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// RouteSegment fetches the drivable path between two coordinates. Any
// failure (cache miss plus exhausted retries, non-Ok code, malformed
// payload) is returned as an error; the caller decides whether to degrade.
func (o *OSRMSegmentRouter) RouteSegment(
	ctx context.Context,
	from, to domain.Coordinate,
) (_ domain.RouteSegment, err error) {
	defer obs.Time(ctx, "osrm.RouteSegment")(&err)

	if !from.Valid() || !to.Valid() {
		return domain.RouteSegment{}, errors.New("route segment: endpoints must be valid coordinates")
	}

	if o.cache != nil {
		seg, ok, cerr := o.cache.Get(ctx, from, to)
		if cerr != nil {
			log.Printf("segment cache read failed: %v", cerr)
		} else if ok {
			return seg, nil
		}
	}

	url := fmt.Sprintf(
		"%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=%s",
		o.baseURL, o.profile, from.Lon, from.Lat, to.Lon, to.Lat, o.geometry,
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, url)
	})
	if err != nil {
		return domain.RouteSegment{}, fmt.Errorf("route segment request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteSegment{}, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return domain.RouteSegment{}, fmt.Errorf("routing engine returned no route (code=%q)", decoded.Code)
	}

	route := decoded.Routes[0]
	path, err := o.parseGeometry(route.Geometry)
	if err != nil {
		return domain.RouteSegment{}, fmt.Errorf("parse route geometry: %w", err)
	}
	if len(path) < 2 {
		return domain.RouteSegment{}, fmt.Errorf("route geometry has %d points; need at least 2", len(path))
	}

	seg := domain.RouteSegment{
		Path:            path,
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
	}

	if o.cache != nil {
		if cerr := o.cache.Put(ctx, from, to, seg); cerr != nil {
			log.Printf("segment cache write failed: %v", cerr)
		}
	}

	return seg, nil
}

func (o *OSRMSegmentRouter) parseGeometry(raw json.RawMessage) ([]domain.Coordinate, error) {
	switch o.geometry {
	case GeometryPolyline:
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, fmt.Errorf("unmarshal polyline string: %w", err)
		}
		return polyline.Decode(encoded), nil
	default:
		var geom geoJSONGeometry
		if err := json.Unmarshal(raw, &geom); err != nil {
			return nil, fmt.Errorf("unmarshal geojson geometry: %w", err)
		}
		path := make([]domain.Coordinate, 0, len(geom.Coordinates))
		for i, pair := range geom.Coordinates {
			if len(pair) < 2 {
				return nil, fmt.Errorf("geometry point %d has %d components", i, len(pair))
			}
			path = append(path, domain.Coordinate{Lon: pair[0], Lat: pair[1]})
		}
		return path, nil
	}
}
