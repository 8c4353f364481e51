package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"courier-route-service/internal/adapters/cache"
	"courier-route-service/internal/adapters/repositories"
	"courier-route-service/internal/adapters/routing"
	"courier-route-service/internal/api"
	"courier-route-service/internal/platform/db"
	"courier-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, OSRM) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")
	osrmURL := getEnv("OSRM_URL", "https://router.project-osrm.org")
	geometry := routing.GeometryFormat(getEnv("OSRM_GEOMETRY", "geojson"))

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Schema init is idempotent; seeding stays in cmd/dbtool.
	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}

	// The segment cache avoids re-fetching geometry for endpoint pairs the
	// routing engine has already answered. Redis when configured, the
	// Postgres-backed cache otherwise.
	var segmentCache routing.SegmentCache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		ttl := getEnvDuration("SEGMENT_CACHE_TTL", 24*time.Hour)
		segmentCache = cache.NewRedisSegmentCache(redisAddr, os.Getenv("REDIS_PASSWORD"), ttl)
	} else {
		segmentCache = cache.NewSQLSegmentCache(database)
	}

	segmentRouter, err := routing.NewOSRMSegmentRouter(osrmURL, geometry, segmentCache)
	if err != nil {
		log.Fatal(err)
	}

	opts := services.ComputeRouteOptions{
		SegmentTimeout:   getEnvDuration("SEGMENT_TIMEOUT", 8*time.Second),
		RequestDelay:     getEnvDuration("SEGMENT_REQUEST_DELAY", 100*time.Millisecond),
		FallbackSpeedMps: getEnvFloat("FALLBACK_SPEED_MPS", 10),
	}

	repo := repositories.NewSQLLegRepository(database)
	router := api.NewRouter(repo, segmentRouter, opts)

	// Timeouts are tuned for cold-cache route computation: a multi-stop
	// batch issues one external routing call per segment.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return d
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return f
}
