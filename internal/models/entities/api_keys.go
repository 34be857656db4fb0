package entities

import "time"

type ApiKey struct {
	ID        string    `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	Status    bool      `db:"status" json:"status"`
	IsAdmin   bool      `db:"is_admin" json:"isAdmin"`
	StationID *string   `db:"station_id" json:"stationId,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
