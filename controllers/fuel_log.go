package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentautopro-backend/config"
	"rentautopro-backend/models"
	"rentautopro-backend/utils"
)

// CreateFuelLogInput defines the expected JSON structure for creating a fuel log
type CreateFuelLogInput struct {
	VehicleID   string   `json:"vehicle_id"`
	Date        string   `json:"date"`
	KM          *int     `json:"km"`
	Liters      *float64 `json:"liters"`
	Cost        *float64 `json:"cost"`
	FuelStation string   `json:"fuel_station"`
}

func (in *CreateFuelLogInput) Validate() (uuid.UUID, time.Time, utils.FieldErrors) {
	errs := utils.FieldErrors{}

	vehicleUUID, err := uuid.Parse(in.VehicleID)
	if in.VehicleID == "" {
		errs.Add("vehicle_id", "vehicle_id is required")
	} else if err != nil {
		errs.Add("vehicle_id", "vehicle_id must be a valid UUID")
	}

	var date time.Time
	if in.Date == "" {
		errs.Add("date", "date is required")
	} else if date, err = utils.ParseDate(in.Date); err != nil {
		errs.Add("date", "date must be a valid date")
	}

	if in.KM == nil {
		errs.Add("km", "km is required")
	} else if *in.KM < 0 {
		errs.Add("km", "km must not be negative")
	}
	if in.Liters != nil && *in.Liters < 0 {
		errs.Add("liters", "liters must not be negative")
	}
	if in.Cost != nil && *in.Cost < 0 {
		errs.Add("cost", "cost must not be negative")
	}
	if len(in.FuelStation) > 100 {
		errs.Add("fuel_station", "fuel_station must be at most 100 characters")
	}
	return vehicleUUID, date, errs
}

// UpdateFuelLogInput defines the expected JSON structure for updating a fuel log
type UpdateFuelLogInput struct {
	Date        *string  `json:"date"`
	KM          *int     `json:"km"`
	Liters      *float64 `json:"liters"`
	Cost        *float64 `json:"cost"`
	FuelStation *string  `json:"fuel_station"`
}

// GetFuelLogs lists fuel logs, newest date first
func GetFuelLogs(c *gin.Context) {
	query := config.DB.Model(&models.FuelLog{}).Preload("Vehicle")

	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	page, perPage := utils.PageParams(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve fuel logs")
		return
	}

	var fuelLogs []models.FuelLog
	if err := query.Order("date DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&fuelLogs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve fuel logs")
		return
	}

	utils.RespondWithData(c, http.StatusOK, utils.NewPaginated(fuelLogs, total, page, perPage))
}

// GetFuelLog retrieves a fuel log with its vehicle
func GetFuelLog(c *gin.Context) {
	logUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid fuel log ID format")
		return
	}

	var fuelLog models.FuelLog
	if err := config.DB.Preload("Vehicle").First(&fuelLog, "id = ?", logUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Fuel log not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, fuelLog)
}

// CreateFuelLog records a refuelling for a vehicle
func CreateFuelLog(c *gin.Context) {
	var input CreateFuelLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	vehicleUUID, date, errs := input.Validate()
	if errs.HasErrors() {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errs.Add("vehicle_id", "vehicle does not exist")
			utils.RespondWithValidationErrors(c, errs)
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	fuelLog := models.FuelLog{
		VehicleID:   vehicleUUID,
		Date:        date,
		KM:          *input.KM,
		Liters:      input.Liters,
		Cost:        input.Cost,
		FuelStation: input.FuelStation,
	}

	if err := config.DB.Create(&fuelLog).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create fuel log")
		return
	}

	fuelLog.Vehicle = &vehicle
	utils.RespondWithMessage(c, http.StatusCreated, "Fuel log created successfully", fuelLog)
}

// UpdateFuelLog applies a partial update to a fuel log
func UpdateFuelLog(c *gin.Context) {
	logUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid fuel log ID format")
		return
	}

	var input UpdateFuelLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	errs := utils.FieldErrors{}
	if input.KM != nil && *input.KM < 0 {
		errs.Add("km", "km must not be negative")
	}
	if input.Liters != nil && *input.Liters < 0 {
		errs.Add("liters", "liters must not be negative")
	}
	if input.Cost != nil && *input.Cost < 0 {
		errs.Add("cost", "cost must not be negative")
	}
	date := parseOptionalDate(input.Date, "date", errs)
	if errs.HasErrors() {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	var fuelLog models.FuelLog
	if err := config.DB.First(&fuelLog, "id = ?", logUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Fuel log not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if date != nil {
		fuelLog.Date = *date
	}
	if input.KM != nil {
		fuelLog.KM = *input.KM
	}
	if input.Liters != nil {
		fuelLog.Liters = input.Liters
	}
	if input.Cost != nil {
		fuelLog.Cost = input.Cost
	}
	if input.FuelStation != nil {
		fuelLog.FuelStation = *input.FuelStation
	}

	if err := config.DB.Save(&fuelLog).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update fuel log")
		return
	}

	config.DB.Preload("Vehicle").First(&fuelLog, "id = ?", fuelLog.ID)
	utils.RespondWithMessage(c, http.StatusOK, "Fuel log updated successfully", fuelLog)
}

// DeleteFuelLog removes a fuel log
func DeleteFuelLog(c *gin.Context) {
	logUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid fuel log ID format")
		return
	}

	result := config.DB.Where("id = ?", logUUID).Delete(&models.FuelLog{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete fuel log")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Fuel log not found")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Fuel log deleted successfully", nil)
}

// GetVehicleFuelLogs lists all fuel logs for one vehicle
func GetVehicleFuelLogs(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var fuelLogs []models.FuelLog
	if err := config.DB.Where("vehicle_id = ?", vehicleUUID).
		Order("date DESC").
		Find(&fuelLogs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve fuel logs")
		return
	}

	utils.RespondWithData(c, http.StatusOK, fuelLogs)
}
