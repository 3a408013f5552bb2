package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailableDate is a calendar day the salon takes appointments on.
// Rows are never removed once created.
type AvailableDate struct {
	ID   string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Date string `gorm:"size:10;uniqueIndex;not null" json:"date"`

	CreatedAt time.Time `json:"created_at"`
}

func (d *AvailableDate) BeforeCreate(tx *gorm.DB) error {
	assignID(&d.ID)
	return nil
}
