package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceAvailability is a slot owned by one service. Any row for a
// (service, date) pair replaces the general pool for that service and day.
type ServiceAvailability struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ServiceID   string `gorm:"type:varchar(36);not null;uniqueIndex:ux_service_availability_slot,priority:1" json:"service_id"`
	DateID      string `gorm:"type:varchar(36);not null;uniqueIndex:ux_service_availability_slot,priority:2" json:"date_id"`
	Time        string `gorm:"size:5;not null;uniqueIndex:ux_service_availability_slot,priority:3" json:"time"`
	IsAvailable bool   `gorm:"not null" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
}

func (ServiceAvailability) TableName() string { return "service_availability" }

func (s *ServiceAvailability) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
