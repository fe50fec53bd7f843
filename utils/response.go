// utils/response.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const DefaultPerPage = 15

// Paginated is the page envelope returned by every list endpoint.
type Paginated struct {
	Data        interface{} `json:"data"`
	Total       int64       `json:"total"`
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
	LastPage    int         `json:"last_page"`
}

func NewPaginated(data interface{}, total int64, page, perPage int) Paginated {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return Paginated{
		Data:        data,
		Total:       total,
		CurrentPage: page,
		PerPage:     perPage,
		LastPage:    lastPage,
	}
}

// PageParams reads page/per_page query parameters with sane defaults.
func PageParams(c *gin.Context) (page, perPage int) {
	page = 1
	perPage = DefaultPerPage
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage))); err == nil && v > 0 {
		perPage = v
	}
	return
}

func RespondWithData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func RespondWithMessage(c *gin.Context, status int, message string, data interface{}) {
	if data == nil {
		c.JSON(status, gin.H{"success": true, "message": message})
		return
	}
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func RespondWithValidationErrors(c *gin.Context, errs FieldErrors) {
	c.JSON(422, gin.H{"success": false, "errors": errs})
}
