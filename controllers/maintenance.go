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

// CreateMaintenanceInput defines the expected JSON structure for registering a maintenance
type CreateMaintenanceInput struct {
	VehicleID     string   `json:"vehicle_id"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	Cost          *float64 `json:"cost"`
	KM            *int     `json:"km_at_maintenance"`
	ScheduledDate *string  `json:"scheduled_date"`
	CompletedDate *string  `json:"completed_date"`
	Status        string   `json:"status"`
}

func (in *CreateMaintenanceInput) Validate() (uuid.UUID, *time.Time, *time.Time, utils.FieldErrors) {
	errs := utils.FieldErrors{}

	vehicleUUID, err := uuid.Parse(in.VehicleID)
	if in.VehicleID == "" {
		errs.Add("vehicle_id", "vehicle_id is required")
	} else if err != nil {
		errs.Add("vehicle_id", "vehicle_id must be a valid UUID")
	}

	if in.Type == "" {
		errs.Add("type", "type is required")
	} else if !models.ValidMaintenanceType(in.Type) {
		errs.Add("type", "type must be one of: preventive, corrective, predictive, scheduled")
	}
	if in.Cost != nil && *in.Cost < 0 {
		errs.Add("cost", "cost must not be negative")
	}
	if in.KM != nil && *in.KM < 0 {
		errs.Add("km_at_maintenance", "km_at_maintenance must not be negative")
	}
	if len(in.Status) > 20 {
		errs.Add("status", "status must be at most 20 characters")
	}

	scheduled := parseOptionalDate(in.ScheduledDate, "scheduled_date", errs)
	completed := parseOptionalDate(in.CompletedDate, "completed_date", errs)

	return vehicleUUID, scheduled, completed, errs
}

// UpdateMaintenanceInput defines the expected JSON structure for updating a maintenance
type UpdateMaintenanceInput struct {
	VehicleID     *string  `json:"vehicle_id"`
	Type          *string  `json:"type"`
	Description   *string  `json:"description"`
	Cost          *float64 `json:"cost"`
	KM            *int     `json:"km_at_maintenance"`
	ScheduledDate *string  `json:"scheduled_date"`
	CompletedDate *string  `json:"completed_date"`
	Status        *string  `json:"status"`
}

func parseOptionalDate(s *string, field string, errs utils.FieldErrors) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := utils.ParseDate(*s)
	if err != nil {
		errs.Add(field, field+" must be a valid date")
		return nil
	}
	return &t
}

// GetMaintenances lists maintenances with filters and pagination
func GetMaintenances(c *gin.Context) {
	query := config.DB.Model(&models.Maintenance{}).Preload("Vehicle")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if mType := c.Query("type"); mType != "" {
		query = query.Where("type = ?", mType)
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	page, perPage := utils.PageParams(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve maintenances")
		return
	}

	var maintenances []models.Maintenance
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&maintenances).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve maintenances")
		return
	}

	utils.RespondWithData(c, http.StatusOK, utils.NewPaginated(maintenances, total, page, perPage))
}

// GetMaintenance retrieves a maintenance with its vehicle
func GetMaintenance(c *gin.Context) {
	maintenanceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance ID format")
		return
	}

	var maintenance models.Maintenance
	if err := config.DB.Preload("Vehicle").First(&maintenance, "id = ?", maintenanceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Maintenance not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, maintenance)
}

// CreateMaintenance registers a maintenance for a vehicle
func CreateMaintenance(c *gin.Context) {
	var input CreateMaintenanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	vehicleUUID, scheduled, completed, errs := input.Validate()
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

	maintenance := models.Maintenance{
		VehicleID:       vehicleUUID,
		Type:            input.Type,
		Description:     input.Description,
		Cost:            input.Cost,
		KMAtMaintenance: input.KM,
		ScheduledDate:   scheduled,
		CompletedDate:   completed,
		Status:          models.MaintenanceStatusPending,
	}
	if input.Status != "" {
		maintenance.Status = input.Status
	}

	if err := config.DB.Create(&maintenance).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to register maintenance")
		return
	}

	maintenance.Vehicle = &vehicle
	utils.RespondWithMessage(c, http.StatusCreated, "Maintenance registered successfully", maintenance)
}

// UpdateMaintenance applies a partial update to a maintenance
func UpdateMaintenance(c *gin.Context) {
	maintenanceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance ID format")
		return
	}

	var input UpdateMaintenanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	errs := utils.FieldErrors{}
	if input.Type != nil && !models.ValidMaintenanceType(*input.Type) {
		errs.Add("type", "type must be one of: preventive, corrective, predictive, scheduled")
	}
	if input.Cost != nil && *input.Cost < 0 {
		errs.Add("cost", "cost must not be negative")
	}
	if input.KM != nil && *input.KM < 0 {
		errs.Add("km_at_maintenance", "km_at_maintenance must not be negative")
	}
	if input.Status != nil && len(*input.Status) > 20 {
		errs.Add("status", "status must be at most 20 characters")
	}
	scheduled := parseOptionalDate(input.ScheduledDate, "scheduled_date", errs)
	completed := parseOptionalDate(input.CompletedDate, "completed_date", errs)

	var vehicleUUID uuid.UUID
	if input.VehicleID != nil {
		vehicleUUID, err = uuid.Parse(*input.VehicleID)
		if err != nil {
			errs.Add("vehicle_id", "vehicle_id must be a valid UUID")
		}
	}
	if errs.HasErrors() {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	var maintenance models.Maintenance
	if err := config.DB.First(&maintenance, "id = ?", maintenanceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Maintenance not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.VehicleID != nil {
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
		maintenance.VehicleID = vehicleUUID
	}
	if input.Type != nil {
		maintenance.Type = *input.Type
	}
	if input.Description != nil {
		maintenance.Description = *input.Description
	}
	if input.Cost != nil {
		maintenance.Cost = input.Cost
	}
	if input.KM != nil {
		maintenance.KMAtMaintenance = input.KM
	}
	if scheduled != nil {
		maintenance.ScheduledDate = scheduled
	}
	if completed != nil {
		maintenance.CompletedDate = completed
	}
	if input.Status != nil {
		maintenance.Status = *input.Status
	}

	if err := config.DB.Save(&maintenance).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update maintenance")
		return
	}

	config.DB.Preload("Vehicle").First(&maintenance, "id = ?", maintenance.ID)
	utils.RespondWithMessage(c, http.StatusOK, "Maintenance updated successfully", maintenance)
}

// DeleteMaintenance removes a maintenance record
func DeleteMaintenance(c *gin.Context) {
	maintenanceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid maintenance ID format")
		return
	}

	result := config.DB.Where("id = ?", maintenanceUUID).Delete(&models.Maintenance{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete maintenance")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Maintenance not found")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Maintenance deleted successfully", nil)
}

// GetVehicleMaintenances lists all maintenances for one vehicle
func GetVehicleMaintenances(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var maintenances []models.Maintenance
	if err := config.DB.Where("vehicle_id = ?", vehicleUUID).
		Order("created_at DESC").
		Find(&maintenances).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve maintenances")
		return
	}

	utils.RespondWithData(c, http.StatusOK, maintenances)
}
