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

// CreateAlertInput defines the expected JSON structure for creating a maintenance alert
type CreateAlertInput struct {
	VehicleID      string `json:"vehicle_id"`
	AlertType      string `json:"alert_type"`
	ThresholdValue int    `json:"threshold_value"`
	IsActive       *bool  `json:"is_active"`
}

func (in *CreateAlertInput) Validate() (uuid.UUID, utils.FieldErrors) {
	errs := utils.FieldErrors{}

	vehicleUUID, err := uuid.Parse(in.VehicleID)
	if in.VehicleID == "" {
		errs.Add("vehicle_id", "vehicle_id is required")
	} else if err != nil {
		errs.Add("vehicle_id", "vehicle_id must be a valid UUID")
	}

	if in.AlertType == "" {
		errs.Add("alert_type", "alert_type is required")
	} else if !models.ValidAlertType(in.AlertType) {
		errs.Add("alert_type", "alert_type must be one of: km, time")
	}
	if in.ThresholdValue < 1 {
		errs.Add("threshold_value", "threshold_value must be at least 1")
	}
	return vehicleUUID, errs
}

// UpdateAlertInput defines the expected JSON structure for updating a maintenance alert
type UpdateAlertInput struct {
	AlertType      *string `json:"alert_type"`
	ThresholdValue *int    `json:"threshold_value"`
	IsActive       *bool   `json:"is_active"`
}

func (in *UpdateAlertInput) Validate() utils.FieldErrors {
	errs := utils.FieldErrors{}
	if in.AlertType != nil && !models.ValidAlertType(*in.AlertType) {
		errs.Add("alert_type", "alert_type must be one of: km, time")
	}
	if in.ThresholdValue != nil && *in.ThresholdValue < 1 {
		errs.Add("threshold_value", "threshold_value must be at least 1")
	}
	return errs
}

// GetMaintenanceAlerts lists alerts with filters and pagination
func GetMaintenanceAlerts(c *gin.Context) {
	query := config.DB.Model(&models.MaintenanceAlert{}).Preload("Vehicle")

	if isActive := c.Query("is_active"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true" || isActive == "1")
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	page, perPage := utils.PageParams(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve alerts")
		return
	}

	var alerts []models.MaintenanceAlert
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&alerts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve alerts")
		return
	}

	utils.RespondWithData(c, http.StatusOK, utils.NewPaginated(alerts, total, page, perPage))
}

// GetMaintenanceAlert retrieves an alert with its vehicle
func GetMaintenanceAlert(c *gin.Context) {
	alertUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid alert ID format")
		return
	}

	var alert models.MaintenanceAlert
	if err := config.DB.Preload("Vehicle").First(&alert, "id = ?", alertUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Alert not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, alert)
}

// CreateMaintenanceAlert creates a standing maintenance alert for a vehicle
func CreateMaintenanceAlert(c *gin.Context) {
	var input CreateAlertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	vehicleUUID, errs := input.Validate()
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

	alert := models.MaintenanceAlert{
		VehicleID:      vehicleUUID,
		AlertType:      input.AlertType,
		ThresholdValue: input.ThresholdValue,
		IsActive:       true,
	}
	if input.IsActive != nil {
		alert.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&alert).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create alert")
		return
	}

	alert.Vehicle = &vehicle
	utils.RespondWithMessage(c, http.StatusCreated, "Maintenance alert created successfully", alert)
}

// UpdateMaintenanceAlert applies a partial update to an alert
func UpdateMaintenanceAlert(c *gin.Context) {
	alertUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid alert ID format")
		return
	}

	var input UpdateAlertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if errs := input.Validate(); errs.HasErrors() {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	var alert models.MaintenanceAlert
	if err := config.DB.First(&alert, "id = ?", alertUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Alert not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.AlertType != nil {
		alert.AlertType = *input.AlertType
	}
	if input.ThresholdValue != nil {
		alert.ThresholdValue = *input.ThresholdValue
	}
	if input.IsActive != nil {
		alert.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&alert).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update alert")
		return
	}

	config.DB.Preload("Vehicle").First(&alert, "id = ?", alert.ID)
	utils.RespondWithMessage(c, http.StatusOK, "Alert updated successfully", alert)
}

// DeleteMaintenanceAlert removes an alert
func DeleteMaintenanceAlert(c *gin.Context) {
	alertUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid alert ID format")
		return
	}

	result := config.DB.Where("id = ?", alertUUID).Delete(&models.MaintenanceAlert{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete alert")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Alert not found")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Alert deleted successfully", nil)
}

// TriggerMaintenanceAlert stamps the alert's last_alert_date to now
func TriggerMaintenanceAlert(c *gin.Context) {
	alertUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid alert ID format")
		return
	}

	var alert models.MaintenanceAlert
	if err := config.DB.First(&alert, "id = ?", alertUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Alert not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	now := time.Now()
	if err := config.DB.Model(&alert).Update("last_alert_date", &now).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to trigger alert")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Alert triggered successfully", alert)
}
