package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a bounded instance of an activity with a participant roster.
// EndTime is set if and only if IsActive is false.
type Event struct {
	ID         string     `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	StationID  string     `gorm:"column:station_id;index:idx_events_station" json:"stationId"`
	ActivityID string     `gorm:"column:activity_id;type:uuid" json:"activityId"`
	// ActivityName is denormalized so listings never join the catalog
	ActivityName string     `gorm:"column:activity_name" json:"activityName"`
	StartTime    time.Time  `gorm:"column:start_time" json:"startTime"`
	EndTime      *time.Time `gorm:"column:end_time" json:"endTime,omitempty"`
	IsActive     bool       `gorm:"column:is_active;default:true;index:idx_events_active" json:"isActive"`
	CreatedBy    *string    `gorm:"column:created_by" json:"createdBy,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Participants []EventParticipant `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// EventParticipant is roster membership, at most one row per (event, member).
// Member display fields are a snapshot taken at check-in time, not a live
// reference. StationID is always copied from the parent event.
type EventParticipant struct {
	ID         string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	EventID    string    `gorm:"column:event_id;type:uuid;uniqueIndex:idx_participants_event_member" json:"eventId"`
	StationID  string    `gorm:"column:station_id" json:"stationId"`
	MemberID   string    `gorm:"column:member_id;type:uuid;uniqueIndex:idx_participants_event_member" json:"memberId"`
	MemberName string    `gorm:"column:member_name" json:"memberName"`
	MemberRank *string   `gorm:"column:member_rank" json:"memberRank,omitempty"`
	CheckInTime time.Time `gorm:"column:check_in_time" json:"checkInTime"`
	Method      string    `gorm:"column:method" json:"method"`
	Location    *string   `gorm:"column:location" json:"location,omitempty"`
	IsOffsite   bool      `gorm:"column:is_offsite;default:false" json:"isOffsite"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (EventParticipant) TableName() string {
	return "event_participants"
}

func (p *EventParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// EventAuditLog entries are append-only; nothing updates or deletes them.
type EventAuditLog struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	EventID   string    `gorm:"column:event_id;type:uuid;index:idx_audit_event" json:"eventId"`
	StationID string    `gorm:"column:station_id" json:"stationId"`
	MemberID  string    `gorm:"column:member_id;type:uuid" json:"memberId"`
	Action    string    `gorm:"column:action" json:"action"`
	At        time.Time `gorm:"column:at" json:"at"`
}

func (EventAuditLog) TableName() string {
	return "event_audit_logs"
}

func (l *EventAuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
