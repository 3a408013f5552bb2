package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailableTime is a slot of the general pool.
type AvailableTime struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	DateID      string `gorm:"type:varchar(36);not null;uniqueIndex:ux_available_times_date_time,priority:1" json:"date_id"`
	Time        string `gorm:"size:5;not null;uniqueIndex:ux_available_times_date_time,priority:2" json:"time"`
	IsAvailable bool   `gorm:"not null" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *AvailableTime) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}
