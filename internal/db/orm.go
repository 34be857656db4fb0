package db

import (
	"fmt"
	"log"

	gormModels "brigade-ops/rollcall/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	log.Println("Connected to Postgres via GORM")
	return db, nil
}

// Migrate creates or updates the event-model tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&gormModels.Station{},
		&gormModels.Member{},
		&gormModels.Activity{},
		&gormModels.ActiveActivity{},
		&gormModels.Event{},
		&gormModels.EventParticipant{},
		&gormModels.EventAuditLog{},
	)
}
