package db

import "github.com/jmoiron/sqlx"

// The sqlx side predates the GORM migrations, so its two tables are created
// here instead of through AutoMigrate.

const createCheckInsTable = `
	CREATE TABLE IF NOT EXISTS check_ins (
		id            uuid PRIMARY KEY,
		station_id    text NOT NULL,
		member_id     uuid NOT NULL,
		activity_id   uuid NOT NULL,
		check_in_time timestamptz NOT NULL,
		method        text NOT NULL,
		location      text,
		is_offsite    boolean NOT NULL DEFAULT false,
		is_active     boolean NOT NULL DEFAULT true,
		created_at    timestamptz NOT NULL DEFAULT now(),
		updated_at    timestamptz NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_check_ins_station_active
		ON check_ins (station_id) WHERE is_active;
	CREATE UNIQUE INDEX IF NOT EXISTS idx_check_ins_member_active
		ON check_ins (member_id, station_id) WHERE is_active;
`

const createApiKeysTable = `
	CREATE TABLE IF NOT EXISTS api_keys (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		key        text NOT NULL UNIQUE,
		status     boolean NOT NULL DEFAULT true,
		is_admin   boolean NOT NULL DEFAULT false,
		station_id text,
		created_at timestamptz NOT NULL DEFAULT now()
	);
`

// EnsureLegacyTables creates the sqlx-managed tables if they are missing
func EnsureLegacyTables(db *sqlx.DB) error {
	if _, err := db.Exec(createCheckInsTable); err != nil {
		return err
	}
	_, err := db.Exec(createApiKeysTable)
	return err
}
