package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentautopro-backend/services"
	"rentautopro-backend/utils"
)

// DashboardController serves the KPI summary screen
type DashboardController struct {
	reports *services.ReportService
}

func NewDashboardController(reports *services.ReportService) *DashboardController {
	return &DashboardController{reports: reports}
}

func (dc *DashboardController) Kpis(c *gin.Context) {
	kpis, err := dc.reports.Kpis()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get KPIs")
		return
	}

	utils.RespondWithData(c, http.StatusOK, kpis)
}
