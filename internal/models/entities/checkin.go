package entities

import "time"

// CheckIn is the legacy single-session presence record, kept on the sqlx
// stack. At most one row per (member, station) has IsActive true.
type CheckIn struct {
	ID          string     `db:"id" json:"id"`
	StationID   string     `db:"station_id" json:"stationId"`
	MemberID    string     `db:"member_id" json:"memberId"`
	ActivityID  string     `db:"activity_id" json:"activityId"`
	CheckInTime time.Time  `db:"check_in_time" json:"checkInTime"`
	Method      string     `db:"method" json:"method"`
	Location    *string    `db:"location" json:"location,omitempty"`
	IsOffsite   bool       `db:"is_offsite" json:"isOffsite"`
	IsActive    bool       `db:"is_active" json:"isActive"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}
