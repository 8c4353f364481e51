package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courier-route-service/internal/api/handlers"
	"courier-route-service/internal/ports"
	"courier-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.LegRepository, segmentRouter ports.SegmentRouter, opts services.ComputeRouteOptions) http.Handler {
	mux := http.NewServeMux()

	legHandler := &handlers.LegHandler{Repo: repo}
	routeHandler := &handlers.RouteHandler{
		Repo:    repo,
		Router:  segmentRouter,
		Options: opts,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/deliveries", legHandler.List)
	mux.HandleFunc("/routes", routeHandler.Compute)
	mux.Handle("/metrics", promhttp.Handler())

	return loggingMiddleware(mux)
}
