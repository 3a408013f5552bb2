package models

import (
	"time"

	"gorm.io/gorm"
)

type SalonSetting struct {
	ID    string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Key   string `gorm:"column:setting_key;size:50;uniqueIndex;not null" json:"setting_key"`
	Value string `gorm:"column:setting_value;type:text" json:"setting_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *SalonSetting) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
