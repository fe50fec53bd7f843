// services/rental_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentautopro-backend/models"
	"rentautopro-backend/utils"
)

// RentalService owns the rental lifecycle: the cost calculation and the
// paired rental/vehicle writes that must stay atomic.
type RentalService struct {
	db *gorm.DB
}

func NewRentalService(db *gorm.DB) *RentalService {
	return &RentalService{db: db}
}

// ComputeRentalCost prices a rental period at the vehicle's daily rate.
// Day count is inclusive of both endpoints.
func ComputeRentalCost(start, end time.Time, dailyRate float64) float64 {
	return float64(utils.RentalDays(start, end)) * dailyRate
}

type CreateRentalParams struct {
	VehicleID uuid.UUID
	ClientID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	StartKM   int
	Status    string // empty means "reserved"
}

// Create inserts a rental and marks the vehicle rented in one transaction.
// The vehicle must be available; the client must exist.
func (s *RentalService) Create(params CreateRentalParams) (*models.Rental, error) {
	var rental *models.Rental

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, "id = ?", params.VehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var client models.Client
		if err := tx.First(&client, "id = ?", params.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if vehicle.Status != models.VehicleStatusAvailable {
			return ErrVehicleUnavailable
		}

		status := params.Status
		if status == "" {
			status = models.RentalStatusReserved
		}

		rental = &models.Rental{
			VehicleID: params.VehicleID,
			ClientID:  params.ClientID,
			StartDate: params.StartDate,
			EndDate:   params.EndDate,
			StartKM:   params.StartKM,
			TotalCost: ComputeRentalCost(params.StartDate, params.EndDate, vehicle.DailyRate),
			Status:    status,
		}
		if err := tx.Create(rental).Error; err != nil {
			return err
		}

		return tx.Model(&vehicle).Update("status", models.VehicleStatusRented).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Vehicle").Preload("Client").First(rental, "id = ?", rental.ID).Error; err != nil {
		return nil, err
	}
	return rental, nil
}

// Complete closes out a rental: records the end odometer, returns the
// vehicle to the available pool and syncs its odometer. Atomic with the
// rental update.
func (s *RentalService) Complete(id uuid.UUID, endKM int) (*models.Rental, error) {
	var rental models.Rental

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rental, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if endKM < rental.StartKM {
			errs := utils.FieldErrors{}
			errs.Add("end_km", "end_km must be greater than or equal to start_km")
			return errs
		}

		if err := tx.Model(&rental).Updates(map[string]interface{}{
			"end_km": endKM,
			"status": models.RentalStatusCompleted,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Vehicle{}).
			Where("id = ?", rental.VehicleID).
			Updates(map[string]interface{}{
				"current_km": endKM,
				"status":     models.VehicleStatusAvailable,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Vehicle").Preload("Client").First(&rental, "id = ?", rental.ID).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}
