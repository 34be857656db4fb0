package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	StationID string    `gorm:"column:station_id;index:idx_members_station" json:"stationId"`
	Name      string    `gorm:"column:name" json:"name"`
	Rank      *string   `gorm:"column:rank" json:"rank,omitempty"`
	// Code is the stable scannable identifier printed on a member's tag
	Code      string    `gorm:"column:code;uniqueIndex:idx_members_code" json:"code"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
