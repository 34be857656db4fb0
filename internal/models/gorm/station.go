package gorm

import "time"

// Station is immutable reference data created by admin tooling. Every other
// entity carries its ID as the partition key.
type Station struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Brigade   string    `gorm:"column:brigade" json:"brigade"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Station) TableName() string {
	return "stations"
}
