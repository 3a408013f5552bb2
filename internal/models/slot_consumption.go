package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ConsumptionConsumed = "consumed"
	ConsumptionMissing  = "missing"
	ConsumptionSkipped  = "skipped"
)

// SlotConsumption journals the second half of a booking: which slot row
// was switched off for an appointment, or that none was found.
type SlotConsumption struct {
	ID            string `gorm:"type:varchar(36);primaryKey" json:"id"`
	AppointmentID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"appointment_id"`
	Layer         string `gorm:"size:10" json:"layer"`
	SlotID        string `gorm:"type:varchar(36)" json:"slot_id"`
	Outcome       string `gorm:"size:10;not null" json:"outcome"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *SlotConsumption) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}
