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
	"rentautopro-backend/services"
	"rentautopro-backend/utils"
)

// RentalController handles rental CRUD plus the lifecycle actions that
// carry vehicle side effects.
type RentalController struct {
	rentals  *services.RentalService
	renderer services.ContractRenderer
}

func NewRentalController(rentals *services.RentalService, renderer services.ContractRenderer) *RentalController {
	return &RentalController{rentals: rentals, renderer: renderer}
}

// CreateRentalInput defines the expected JSON structure for creating a rental
type CreateRentalInput struct {
	VehicleID string `json:"vehicle_id"`
	ClientID  string `json:"client_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StartKM   *int   `json:"start_km"`
	Status    string `json:"status"`
}

func (in *CreateRentalInput) Validate() (services.CreateRentalParams, utils.FieldErrors) {
	errs := utils.FieldErrors{}
	var params services.CreateRentalParams

	vehicleUUID, err := uuid.Parse(in.VehicleID)
	if in.VehicleID == "" {
		errs.Add("vehicle_id", "vehicle_id is required")
	} else if err != nil {
		errs.Add("vehicle_id", "vehicle_id must be a valid UUID")
	}
	params.VehicleID = vehicleUUID

	clientUUID, err := uuid.Parse(in.ClientID)
	if in.ClientID == "" {
		errs.Add("client_id", "client_id is required")
	} else if err != nil {
		errs.Add("client_id", "client_id must be a valid UUID")
	}
	params.ClientID = clientUUID

	var start, end time.Time
	if in.StartDate == "" {
		errs.Add("start_date", "start_date is required")
	} else if start, err = utils.ParseDate(in.StartDate); err != nil {
		errs.Add("start_date", "start_date must be a valid date")
	}
	if in.EndDate == "" {
		errs.Add("end_date", "end_date is required")
	} else if end, err = utils.ParseDate(in.EndDate); err != nil {
		errs.Add("end_date", "end_date must be a valid date")
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		errs.Add("end_date", "end_date must be after start_date")
	}
	params.StartDate = start
	params.EndDate = end

	if in.StartKM != nil {
		if *in.StartKM < 0 {
			errs.Add("start_km", "start_km must not be negative")
		}
		params.StartKM = *in.StartKM
	}
	if in.Status != "" && !models.ValidRentalStatus(in.Status) {
		errs.Add("status", "status must be one of: reserved, active, completed, cancelled")
	}
	params.Status = in.Status

	return params, errs
}

// UpdateRentalInput defines the expected JSON structure for updating a rental
type UpdateRentalInput struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	StartKM   *int    `json:"start_km"`
	EndKM     *int    `json:"end_km"`
	Status    *string `json:"status"`
}

type CompleteRentalInput struct {
	EndKM *int `json:"end_km"`
}

// Index lists rentals with filters and pagination
func (rc *RentalController) Index(c *gin.Context) {
	query := config.DB.Model(&models.Rental{}).Preload("Vehicle").Preload("Client")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if clientID := c.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	page, perPage := utils.PageParams(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rentals")
		return
	}

	var rentals []models.Rental
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&rentals).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rentals")
		return
	}

	utils.RespondWithData(c, http.StatusOK, utils.NewPaginated(rentals, total, page, perPage))
}

// Show retrieves a rental with its vehicle and client
func (rc *RentalController) Show(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	var rental models.Rental
	if err := config.DB.Preload("Vehicle").Preload("Client").
		First(&rental, "id = ?", rentalUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Rental not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, rental)
}

// Store creates a rental. The service rejects unavailable vehicles and
// flips the vehicle to rented atomically with the insert.
func (rc *RentalController) Store(c *gin.Context) {
	var input CreateRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	params, errs := input.Validate()
	if errs.HasErrors() {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	rental, err := rc.rentals.Create(params)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle or client not found")
		case errors.Is(err, services.ErrVehicleUnavailable):
			utils.RespondWithError(c, http.StatusBadRequest, "The vehicle is not available")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create rental")
		}
		return
	}

	utils.RespondWithMessage(c, http.StatusCreated, "Rental created successfully", rental)
}

// Update applies a partial update to a rental. No vehicle side effects;
// completion goes through Complete.
func (rc *RentalController) Update(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	var input UpdateRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	errs := utils.FieldErrors{}
	start := parseOptionalDate(input.StartDate, "start_date", errs)
	end := parseOptionalDate(input.EndDate, "end_date", errs)
	if input.StartKM != nil && *input.StartKM < 0 {
		errs.Add("start_km", "start_km must not be negative")
	}
	if input.EndKM != nil && *input.EndKM < 0 {
		errs.Add("end_km", "end_km must not be negative")
	}
	if input.Status != nil && !models.ValidRentalStatus(*input.Status) {
		errs.Add("status", "status must be one of: reserved, active, completed, cancelled")
	}
	if errs.HasErrors() {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	var rental models.Rental
	if err := config.DB.First(&rental, "id = ?", rentalUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Rental not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if start != nil {
		rental.StartDate = *start
	}
	if end != nil {
		rental.EndDate = *end
	}
	if input.StartKM != nil {
		rental.StartKM = *input.StartKM
	}
	if input.EndKM != nil {
		rental.EndKM = input.EndKM
	}
	if input.Status != nil {
		rental.Status = *input.Status
	}

	if err := config.DB.Save(&rental).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update rental")
		return
	}

	config.DB.Preload("Vehicle").Preload("Client").First(&rental, "id = ?", rental.ID)
	utils.RespondWithMessage(c, http.StatusOK, "Rental updated successfully", rental)
}

// Destroy removes a rental. The vehicle keeps its current status.
func (rc *RentalController) Destroy(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	result := config.DB.Where("id = ?", rentalUUID).Delete(&models.Rental{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete rental")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Rental not found")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Rental deleted successfully", nil)
}

// Complete closes out a rental given the end odometer reading
func (rc *RentalController) Complete(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	var input CompleteRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.EndKM == nil {
		errs := utils.FieldErrors{}
		errs.Add("end_km", "end_km is required")
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	rental, err := rc.rentals.Complete(rentalUUID, *input.EndKM)
	if err != nil {
		var fieldErrs utils.FieldErrors
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Rental not found")
		case errors.As(err, &fieldErrs):
			utils.RespondWithValidationErrors(c, fieldErrs)
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to complete rental")
		}
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Rental completed successfully", rental)
}

// GeneratePDF returns the rental contract document as a download
func (rc *RentalController) GeneratePDF(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	var rental models.Rental
	if err := config.DB.Preload("Vehicle").Preload("Client").
		First(&rental, "id = ?", rentalUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Rental not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	content, filename, err := rc.renderer.RenderRentalContract(&rental)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate contract")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", content)
}
