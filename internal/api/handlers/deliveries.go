package handlers

import (
	"log"
	"net/http"

	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/ports"
)

// LegHandler exposes read-only pending-delivery retrieval endpoints.
type LegHandler struct {
	Repo ports.LegRepository
}

func (h *LegHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	legs, err := h.Repo.ListPendingLegs(r.Context())
	if err != nil {
		log.Printf("list pending legs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListLegsResponse{
		Legs: make([]dto.LegResponse, 0, len(legs)),
	}
	for _, l := range legs {
		res.Legs = append(res.Legs, dto.LegResponse{
			LegID:       l.ID,
			OrderNumber: l.OrderNumber,
			Restaurant: dto.PlaceResponse{
				Name: l.Restaurant.Name,
				Lat:  l.Restaurant.Coord.Lat,
				Lon:  l.Restaurant.Coord.Lon,
			},
			Customer: dto.PlaceResponse{
				Name: l.Customer.Name,
				Lat:  l.Customer.Coord.Lat,
				Lon:  l.Customer.Coord.Lon,
			},
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
