package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is a named category of work. Builtins are seeded once per station;
// custom ones are user-created. Soft-deleted activities stay referenced by
// historical events and check-ins.
type Activity struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	StationID string    `gorm:"column:station_id;uniqueIndex:idx_activities_station_name" json:"stationId"`
	Name      string    `gorm:"column:name;uniqueIndex:idx_activities_station_name" json:"name"`
	IsCustom  bool      `gorm:"column:is_custom;default:false" json:"isCustom"`
	IsDeleted bool      `gorm:"column:is_deleted;default:false" json:"isDeleted"`
	CreatedBy *string   `gorm:"column:created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Activity) TableName() string {
	return "activities"
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ActiveActivity is the per-station default activity pointer. StationID is the
// primary key, so the table can never hold more than one row per station.
type ActiveActivity struct {
	StationID  string    `gorm:"column:station_id;primaryKey" json:"stationId"`
	ActivityID string    `gorm:"column:activity_id;type:uuid" json:"activityId"`
	SetAt      time.Time `gorm:"column:set_at" json:"setAt"`
	SetBy      *string   `gorm:"column:set_by" json:"setBy,omitempty"`
}

func (ActiveActivity) TableName() string {
	return "active_activities"
}
