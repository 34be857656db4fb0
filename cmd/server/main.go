package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brigade-ops/rollcall/internal/db"
	"brigade-ops/rollcall/internal/logging"
	"brigade-ops/rollcall/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Rollcall starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	if os.Getenv("STORE_BACKEND") != "memory" {
		// Connect with sqlx (legacy check-ins, api keys)
		if err := db.InitPostgres(); err != nil {
			logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
			log.Fatalf("Failed to connect to Postgres (sqlx): %v", err)
		}
		logging.Info("Connected to Postgres (sqlx)")

		if err := db.EnsureLegacyTables(db.DB); err != nil {
			logging.Error("Failed to create legacy tables", "error", err.Error())
			log.Fatalf("Failed to create legacy tables: %v", err)
		}

		// Connect with GORM (event model)
		gormDB, err := db.InitPostgresORM(db.Dsn())
		if err != nil {
			logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
			log.Fatalf("Failed to connect to Postgres (GORM): %v", err)
		}
		logging.Info("Connected to Postgres (GORM)")

		if err := db.Migrate(gormDB); err != nil {
			logging.Error("Failed to migrate schema", "error", err.Error())
			log.Fatalf("Failed to migrate schema: %v", err)
		}
		logging.Info("Schema migrated")
	}

	upSince := time.Now()

	router := routes.RegisterRoutes(upSince)

	// metrics endpoint sits outside the Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logging.Info("Server starting",
		"port", port,
		"environment", appEnv,
	)

	log.Printf("Starting server on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
