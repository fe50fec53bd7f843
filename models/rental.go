package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RentalStatusReserved  = "reserved"
	RentalStatusActive    = "active"
	RentalStatusCompleted = "completed"
	RentalStatusCancelled = "cancelled"
)

var RentalStatuses = []string{RentalStatusReserved, RentalStatusActive, RentalStatusCompleted, RentalStatusCancelled}

type Rental struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	VehicleID uuid.UUID `gorm:"type:uuid;index;not null" json:"vehicle_id"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	StartKM   int       `gorm:"column:start_km;default:0" json:"start_km"`
	EndKM     *int      `gorm:"column:end_km" json:"end_km"`
	TotalCost float64   `gorm:"type:decimal(10,2)" json:"total_cost"`
	Status    string    `gorm:"size:20;default:'reserved'" json:"status"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Client  *Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Rental) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

func ValidRentalStatus(s string) bool {
	for _, v := range RentalStatuses {
		if v == s {
			return true
		}
	}
	return false
}
