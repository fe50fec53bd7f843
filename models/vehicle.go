package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VehicleStatusAvailable   = "available"
	VehicleStatusRented      = "rented"
	VehicleStatusMaintenance = "maintenance"
)

// VehicleStatuses lists the accepted vehicle status values.
var VehicleStatuses = []string{VehicleStatusAvailable, VehicleStatusRented, VehicleStatusMaintenance}

type Vehicle struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Brand        string  `gorm:"size:100;not null" json:"brand"`
	Model        string  `gorm:"size:100;not null" json:"model"`
	Year         int     `gorm:"not null" json:"year"`
	LicensePlate string  `gorm:"size:20;uniqueIndex;not null" json:"license_plate"`
	Status       string  `gorm:"size:20;default:'available'" json:"status"`
	CurrentKM    int     `gorm:"column:current_km;default:0" json:"current_km"`
	FuelType     string  `gorm:"size:20" json:"fuel_type"`
	DailyRate    float64 `gorm:"type:decimal(10,2)" json:"daily_rate"`

	Maintenances      []Maintenance      `gorm:"foreignKey:VehicleID" json:"maintenances,omitempty"`
	MaintenanceAlerts []MaintenanceAlert `gorm:"foreignKey:VehicleID" json:"maintenance_alerts,omitempty"`
	Rentals           []Rental           `gorm:"foreignKey:VehicleID" json:"rentals,omitempty"`
	FuelLogs          []FuelLog          `gorm:"foreignKey:VehicleID" json:"fuel_logs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

func ValidVehicleStatus(s string) bool {
	for _, v := range VehicleStatuses {
		if v == s {
			return true
		}
	}
	return false
}
