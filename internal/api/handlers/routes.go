package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/ports"
	"courier-route-service/internal/services"
)

type RouteHandler struct {
	Repo    ports.LegRepository
	Router  ports.SegmentRouter
	Options services.ComputeRouteOptions
}

// Compute orchestrates one route computation for a driver. Legs supplied
// inline take precedence; otherwise the pending legs from the repository
// are routed.
func (h *RouteHandler) Compute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Driver.Lat == nil || req.Driver.Lon == nil {
		writeError(w, r, http.StatusBadRequest, "driver coordinate is required")
		return
	}
	driver := domain.Coordinate{Lat: *req.Driver.Lat, Lon: *req.Driver.Lon}

	legs := legsFromRequest(req.Legs)
	if len(legs) == 0 {
		var err error
		legs, err = h.Repo.ListPendingLegs(r.Context())
		if err != nil {
			log.Printf("list pending legs failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	result, err := services.ComputeRoute(r.Context(), driver, legs, h.Router, h.Options)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDriverCoordinate):
			writeError(w, r, http.StatusBadRequest, "driver coordinate is out of range")
		case errors.Is(err, services.ErrEmptyLegBatch), errors.Is(err, services.ErrNoRoutableLegs):
			writeError(w, r, http.StatusUnprocessableEntity, "no routable delivery legs")
		default:
			log.Printf("compute route failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, routeResponse(result))
}

func legsFromRequest(in []dto.LegRequest) []domain.DeliveryLeg {
	legs := make([]domain.DeliveryLeg, 0, len(in))
	for _, l := range in {
		legs = append(legs, domain.DeliveryLeg{
			ID:          l.LegID,
			OrderNumber: l.OrderNumber,
			Restaurant: domain.Place{
				Name:  l.Restaurant.Name,
				Coord: domain.Coordinate{Lat: l.Restaurant.Lat, Lon: l.Restaurant.Lon},
			},
			Customer: domain.Place{
				Name:  l.Customer.Name,
				Coord: domain.Coordinate{Lat: l.Customer.Lat, Lon: l.Customer.Lon},
			},
		})
	}
	return legs
}

func routeResponse(res *domain.RouteResult) dto.RouteResponse {
	out := dto.RouteResponse{
		Restaurants:      make([]dto.RouteStopResponse, 0, len(res.RestaurantLegs)),
		Customers:        make([]dto.RouteStopResponse, 0, len(res.CustomerLegs)),
		SkippedLegIDs:    res.SkippedLegIDs,
		Path:             make([][2]float64, 0, len(res.Path)),
		TotalDistanceKm:  res.TotalDistanceKm,
		TotalDurationMin: res.TotalDurationMin,
		Degraded:         res.AnyDegraded,
	}

	for _, leg := range res.RestaurantLegs {
		out.Restaurants = append(out.Restaurants, dto.RouteStopResponse{
			LegID:       leg.ID,
			OrderNumber: leg.OrderNumber,
			Name:        leg.Restaurant.Name,
			Lat:         leg.Restaurant.Coord.Lat,
			Lon:         leg.Restaurant.Coord.Lon,
		})
	}
	for _, leg := range res.CustomerLegs {
		out.Customers = append(out.Customers, dto.RouteStopResponse{
			LegID:       leg.ID,
			OrderNumber: leg.OrderNumber,
			Name:        leg.Customer.Name,
			Lat:         leg.Customer.Coord.Lat,
			Lon:         leg.Customer.Coord.Lon,
		})
	}
	for _, p := range res.Path {
		out.Path = append(out.Path, [2]float64{p.Lat, p.Lon})
	}

	return out
}
