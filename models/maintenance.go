package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaintenanceTypePreventive = "preventive"
	MaintenanceTypeCorrective = "corrective"
	MaintenanceTypePredictive = "predictive"
	MaintenanceTypeScheduled  = "scheduled"

	MaintenanceStatusPending = "pending"
)

var MaintenanceTypes = []string{MaintenanceTypePreventive, MaintenanceTypeCorrective, MaintenanceTypePredictive, MaintenanceTypeScheduled}

type Maintenance struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	VehicleID uuid.UUID `gorm:"type:uuid;index;not null" json:"vehicle_id"`

	Type            string     `gorm:"size:20;not null" json:"type"`
	Description     string     `json:"description"`
	Cost            *float64   `gorm:"type:decimal(10,2)" json:"cost"`
	KMAtMaintenance *int       `gorm:"column:km_at_maintenance" json:"km_at_maintenance"`
	ScheduledDate   *time.Time `gorm:"type:date" json:"scheduled_date"`
	CompletedDate   *time.Time `gorm:"type:date" json:"completed_date"`
	Status          string     `gorm:"size:20;default:'pending'" json:"status"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Maintenance) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

func ValidMaintenanceType(s string) bool {
	for _, v := range MaintenanceTypes {
		if v == s {
			return true
		}
	}
	return false
}
