package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentautopro-backend/config"
	"rentautopro-backend/models"
	"rentautopro-backend/utils"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	FullName   string `json:"full_name"`
	DocumentID string `json:"document_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
}

func (in *CreateClientInput) Validate() utils.FieldErrors {
	errs := utils.FieldErrors{}
	if in.FullName == "" {
		errs.Add("full_name", "full_name is required")
	} else if len(in.FullName) > 200 {
		errs.Add("full_name", "full_name must be at most 200 characters")
	}
	if in.DocumentID == "" {
		errs.Add("document_id", "document_id is required")
	} else if len(in.DocumentID) > 50 {
		errs.Add("document_id", "document_id must be at most 50 characters")
	}
	if len(in.Phone) > 20 {
		errs.Add("phone", "phone must be at most 20 characters")
	}
	if in.Email != "" && !utils.ValidateEmail(in.Email) {
		errs.Add("email", "email format is invalid")
	}
	if len(in.Email) > 100 {
		errs.Add("email", "email must be at most 100 characters")
	}
	return errs
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	FullName   *string `json:"full_name"`
	DocumentID *string `json:"document_id"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
}

func (in *UpdateClientInput) Validate() utils.FieldErrors {
	errs := utils.FieldErrors{}
	if in.FullName != nil && (*in.FullName == "" || len(*in.FullName) > 200) {
		errs.Add("full_name", "full_name must be between 1 and 200 characters")
	}
	if in.DocumentID != nil && (*in.DocumentID == "" || len(*in.DocumentID) > 50) {
		errs.Add("document_id", "document_id must be between 1 and 50 characters")
	}
	if in.Phone != nil && len(*in.Phone) > 20 {
		errs.Add("phone", "phone must be at most 20 characters")
	}
	if in.Email != nil && *in.Email != "" && !utils.ValidateEmail(*in.Email) {
		errs.Add("email", "email format is invalid")
	}
	return errs
}

// GetClients lists clients with search and pagination
func GetClients(c *gin.Context) {
	query := config.DB.Model(&models.Client{})

	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(document_id) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	page, perPage := utils.PageParams(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	var clients []models.Client
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	utils.RespondWithData(c, http.StatusOK, utils.NewPaginated(clients, total, page, perPage))
}

// GetClient retrieves a client with their rental history
func GetClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.
		Preload("Rentals").
		Preload("Rentals.Vehicle").
		First(&client, "id = ?", clientUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, client)
}

// CreateClient creates a new client
func CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if errs := input.Validate(); errs.HasErrors() {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	// Document ID must be unique
	var existing models.Client
	if err := config.DB.Where("document_id = ?", input.DocumentID).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "A client with this document ID already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	client := models.Client{
		FullName:   input.FullName,
		DocumentID: input.DocumentID,
		Phone:      input.Phone,
		Email:      input.Email,
		Address:    input.Address,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	utils.RespondWithMessage(c, http.StatusCreated, "Client created successfully", client)
}

// UpdateClient applies a partial update to a client
func UpdateClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if errs := input.Validate(); errs.HasErrors() {
		utils.RespondWithValidationErrors(c, errs)
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ?", clientUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.DocumentID != nil && *input.DocumentID != client.DocumentID {
		var existing models.Client
		if err := config.DB.Where("document_id = ?", *input.DocumentID).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Another client with this document ID already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		client.DocumentID = *input.DocumentID
	}
	if input.FullName != nil {
		client.FullName = *input.FullName
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Address != nil {
		client.Address = *input.Address
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Client updated successfully", client)
}

// DeleteClient removes a client. Their rentals are kept.
func DeleteClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	result := config.DB.Where("id = ?", clientUUID).Delete(&models.Client{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Client deleted successfully", nil)
}
