package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alert types: "km" fires on odometer distance, "time" on elapsed days.
const (
	AlertTypeKM   = "km"
	AlertTypeTime = "time"
)

type MaintenanceAlert struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	VehicleID uuid.UUID `gorm:"type:uuid;index;not null" json:"vehicle_id"`

	AlertType      string     `gorm:"size:10;not null" json:"alert_type"`
	ThresholdValue int        `gorm:"not null" json:"threshold_value"`
	LastAlertDate  *time.Time `gorm:"type:date" json:"last_alert_date"`
	IsActive       bool       `json:"is_active"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *MaintenanceAlert) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

func ValidAlertType(s string) bool {
	return s == AlertTypeKM || s == AlertTypeTime
}
