package model

import "time"

// Device represents a resource owned by exactly one user.
type Device struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	Description string    `gorm:"column:description"`
	APIKey      string    `gorm:"column:apikey;not null"`
	OwnerID     uint      `gorm:"column:owner_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Device) TableName() string {
	return "devices"
}
