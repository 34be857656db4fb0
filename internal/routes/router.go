package routes

import (
	"context"
	"net/http"
	"time"

	"brigade-ops/rollcall/internal/api"
	"brigade-ops/rollcall/internal/db"
	"brigade-ops/rollcall/internal/jobs"
	"brigade-ops/rollcall/internal/logging"
	"brigade-ops/rollcall/internal/metrics"
	"brigade-ops/rollcall/internal/middleware"
	"brigade-ops/rollcall/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Station-Id", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	deps, err := api.InitDependencies()
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// background sweep keeps events rolling over even on an idle deployment
	jobs.InitializeJobs(context.Background(), deps.Services.Rollover, metricsReg)

	// audit worker only runs when the Redis queue is configured
	if deps.Services.Queue != nil {
		workers.InitWorkers(context.Background(), deps.Services.Queue, deps.Repo.Audit)
	}

	RegisterAPIRoutes(r, metricsReg, deps)

	return r
}
