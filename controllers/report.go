// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rentautopro-backend/services"
	"rentautopro-backend/utils"
)

// ReportController handles all reporting functions
type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

func (rc *ReportController) reportRange(c *gin.Context) (time.Time, time.Time) {
	start, end := services.DefaultReportRange()
	if v := c.Query("start_date"); v != "" {
		if t, err := utils.ParseDate(v); err == nil {
			start = t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := utils.ParseDate(v); err == nil {
			end = t
		}
	}
	return start, end
}

// Income returns monthly and per-vehicle revenue over the range
func (rc *ReportController) Income(c *gin.Context) {
	start, end := rc.reportRange(c)

	report, err := rc.reports.Income(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate income report")
		return
	}

	utils.RespondWithData(c, http.StatusOK, report)
}

// MaintenanceCosts returns monthly, per-vehicle and per-type maintenance spending
func (rc *ReportController) MaintenanceCosts(c *gin.Context) {
	start, end := rc.reportRange(c)

	report, err := rc.reports.MaintenanceCosts(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate maintenance cost report")
		return
	}

	utils.RespondWithData(c, http.StatusOK, report)
}

// FleetAvailability returns the current fleet status breakdown
func (rc *ReportController) FleetAvailability(c *gin.Context) {
	report, err := rc.reports.FleetAvailability()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate fleet availability report")
		return
	}

	utils.RespondWithData(c, http.StatusOK, report)
}
