package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuelLog struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	VehicleID uuid.UUID `gorm:"type:uuid;index;not null" json:"vehicle_id"`

	Date        time.Time `gorm:"type:date;not null" json:"date"`
	KM          int       `gorm:"column:km;not null" json:"km"`
	Liters      *float64  `gorm:"type:decimal(10,2)" json:"liters"`
	Cost        *float64  `gorm:"type:decimal(10,2)" json:"cost"`
	FuelStation string    `gorm:"size:100" json:"fuel_station"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *FuelLog) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
