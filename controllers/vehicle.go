package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentautopro-backend/config"
	"rentautopro-backend/models"
	"rentautopro-backend/utils"
)

// CreateVehicleInput defines the expected JSON structure for creating a vehicle
type CreateVehicleInput struct {
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	LicensePlate string   `json:"license_plate"`
	Status       string   `json:"status"`
	CurrentKM    *int     `json:"current_km"`
	FuelType     string   `json:"fuel_type"`
	DailyRate    *float64 `json:"daily_rate"`
}

func (in *CreateVehicleInput) Validate() utils.FieldErrors {
	errs := utils.FieldErrors{}
	if in.Brand == "" {
		errs.Add("brand", "brand is required")
	} else if len(in.Brand) > 100 {
		errs.Add("brand", "brand must be at most 100 characters")
	}
	if in.Model == "" {
		errs.Add("model", "model is required")
	} else if len(in.Model) > 100 {
		errs.Add("model", "model must be at most 100 characters")
	}
	if in.Year < 1900 || in.Year > time.Now().Year()+1 {
		errs.Add("year", "year is out of range")
	}
	if in.LicensePlate == "" {
		errs.Add("license_plate", "license_plate is required")
	} else if len(in.LicensePlate) > 20 {
		errs.Add("license_plate", "license_plate must be at most 20 characters")
	}
	if in.Status != "" && !models.ValidVehicleStatus(in.Status) {
		errs.Add("status", "status must be one of: available, rented, maintenance")
	}
	if in.CurrentKM != nil && *in.CurrentKM < 0 {
		errs.Add("current_km", "current_km must not be negative")
	}
	if in.DailyRate == nil {
		errs.Add("daily_rate", "daily_rate is required")
	} else if *in.DailyRate < 0 {
		errs.Add("daily_rate", "daily_rate must not be negative")
	}
	if len(in.FuelType) > 20 {
		errs.Add("fuel_type", "fuel_type must be at most 20 characters")
	}
	return errs
}

// UpdateVehicleInput defines the expected JSON structure for updating a vehicle
type UpdateVehicleInput struct {
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	LicensePlate *string  `json:"license_plate"`
	Status       *string  `json:"status"`
	CurrentKM    *int     `json:"current_km"`
	FuelType     *string  `json:"fuel_type"`
	DailyRate    *float64 `json:"daily_rate"`
}

func (in *UpdateVehicleInput) Validate() utils.FieldErrors {
	errs := utils.FieldErrors{}
	if in.Brand != nil && (*in.Brand == "" || len(*in.Brand) > 100) {
		errs.Add("brand", "brand must be between 1 and 100 characters")
	}
	if in.Model != nil && (*in.Model == "" || len(*in.Model) > 100) {
		errs.Add("model", "model must be between 1 and 100 characters")
	}
	if in.Year != nil && (*in.Year < 1900 || *in.Year > time.Now().Year()+1) {
		errs.Add("year", "year is out of range")
	}
	if in.LicensePlate != nil && (*in.LicensePlate == "" || len(*in.LicensePlate) > 20) {
		errs.Add("license_plate", "license_plate must be between 1 and 20 characters")
	}
	if in.Status != nil && !models.ValidVehicleStatus(*in.Status) {
		errs.Add("status", "status must be one of: available, rented, maintenance")
	}
	if in.CurrentKM != nil && *in.CurrentKM < 0 {
		errs.Add("current_km", "current_km must not be negative")
	}
	if in.DailyRate != nil && *in.DailyRate < 0 {
		errs.Add("daily_rate", "daily_rate must not be negative")
	}
	return errs
}

// GetVehicles lists vehicles with filters and pagination
func GetVehicles(c *gin.Context) {
	query := config.DB.Model(&models.Vehicle{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(brand)+"%")
	}
	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(brand) LIKE ? OR LOWER(model) LIKE ? OR LOWER(license_plate) LIKE ?", like, like, like)
	}

	page, perPage := utils.PageParams(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vehicles")
		return
	}

	var vehicles []models.Vehicle
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&vehicles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vehicles")
		return
	}

	utils.RespondWithData(c, http.StatusOK, utils.NewPaginated(vehicles, total, page, perPage))
}

// GetVehicle retrieves a vehicle with its related records
func GetVehicle(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.
		Preload("Maintenances").
		Preload("Rentals").
		Preload("FuelLogs").
		Preload("MaintenanceAlerts").
		First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, vehicle)
}

// CreateVehicle creates a new vehicle
func CreateVehicle(c *gin.Context) {
	var input CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if errs := input.Validate(); errs.HasErrors() {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	// License plate must be unique
	var existing models.Vehicle
	if err := config.DB.Where("license_plate = ?", input.LicensePlate).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "A vehicle with this license plate already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	vehicle := models.Vehicle{
		Brand:        input.Brand,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		Status:       models.VehicleStatusAvailable,
		FuelType:     input.FuelType,
		DailyRate:    *input.DailyRate,
	}
	if input.Status != "" {
		vehicle.Status = input.Status
	}
	if input.CurrentKM != nil {
		vehicle.CurrentKM = *input.CurrentKM
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	utils.RespondWithMessage(c, http.StatusCreated, "Vehicle created successfully", vehicle)
}

// UpdateVehicle applies a partial update to a vehicle
func UpdateVehicle(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var input UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if errs := input.Validate(); errs.HasErrors() {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.LicensePlate != nil && *input.LicensePlate != vehicle.LicensePlate {
		var existing models.Vehicle
		if err := config.DB.Where("license_plate = ?", *input.LicensePlate).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Another vehicle with this license plate already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		vehicle.LicensePlate = *input.LicensePlate
	}
	if input.Brand != nil {
		vehicle.Brand = *input.Brand
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Status != nil {
		vehicle.Status = *input.Status
	}
	if input.CurrentKM != nil {
		vehicle.CurrentKM = *input.CurrentKM
	}
	if input.FuelType != nil {
		vehicle.FuelType = *input.FuelType
	}
	if input.DailyRate != nil {
		vehicle.DailyRate = *input.DailyRate
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Vehicle updated successfully", vehicle)
}

// DeleteVehicle removes a vehicle and its maintenances, alerts and fuel
// logs. Rentals are kept for the financial history.
func DeleteVehicle(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", vehicleUUID).Delete(&models.Maintenance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", vehicleUUID).Delete(&models.MaintenanceAlert{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", vehicleUUID).Delete(&models.FuelLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&vehicle).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Vehicle deleted successfully", nil)
}

// GetVehicleHistory returns a vehicle with its maintenances, rentals and fuel logs
func GetVehicleHistory(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.
		Preload("Maintenances", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Rentals", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Rentals.Client").
		Preload("FuelLogs", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"vehicle":      vehicle,
		"maintenances": vehicle.Maintenances,
		"rentals":      vehicle.Rentals,
		"fuel_logs":    vehicle.FuelLogs,
	})
}
