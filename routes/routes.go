package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rentautopro-backend/config"
	"rentautopro-backend/controllers"
	"rentautopro-backend/services"
	"rentautopro-backend/utils"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	rentalService := services.NewRentalService(config.DB)
	reportService := services.NewReportService(config.DB)
	renderer := services.NewHTMLContractRenderer()

	rentalController := controllers.NewRentalController(rentalService, renderer)
	dashboardController := controllers.NewDashboardController(reportService)
	reportController := controllers.NewReportController(reportService)

	v1 := r.Group("/api/v1")

	// Auth routes
	v1.POST("/register", controllers.Register)
	v1.POST("/login", controllers.Login)

	api := v1.Group("")
	api.Use(utils.AuthMiddleware())
	{
		api.POST("/logout", controllers.Logout)
		api.GET("/me", controllers.Me)

		// Vehicle routes
		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("", controllers.GetVehicles)
			vehicles.POST("", controllers.CreateVehicle)
			vehicles.GET("/:id", controllers.GetVehicle)
			vehicles.PUT("/:id", controllers.UpdateVehicle)
			vehicles.DELETE("/:id", controllers.DeleteVehicle)
			vehicles.GET("/:id/history", controllers.GetVehicleHistory)
			vehicles.GET("/:id/maintenances", controllers.GetVehicleMaintenances)
			vehicles.GET("/:id/fuel-logs", controllers.GetVehicleFuelLogs)
		}

		// Client routes
		clients := api.Group("/clients")
		{
			clients.GET("", controllers.GetClients)
			clients.POST("", controllers.CreateClient)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Rental routes
		rentals := api.Group("/rentals")
		{
			rentals.GET("", rentalController.Index)
			rentals.POST("", rentalController.Store)
			rentals.GET("/:id", rentalController.Show)
			rentals.PUT("/:id", rentalController.Update)
			rentals.DELETE("/:id", rentalController.Destroy)
			rentals.POST("/:id/complete", rentalController.Complete)
			rentals.POST("/:id/pdf", rentalController.GeneratePDF)
		}

		// Maintenance routes
		maintenances := api.Group("/maintenances")
		{
			maintenances.GET("", controllers.GetMaintenances)
			maintenances.POST("", controllers.CreateMaintenance)
			maintenances.GET("/:id", controllers.GetMaintenance)
			maintenances.PUT("/:id", controllers.UpdateMaintenance)
			maintenances.DELETE("/:id", controllers.DeleteMaintenance)
		}

		// Maintenance alert routes
		alerts := api.Group("/maintenance-alerts")
		{
			alerts.GET("", controllers.GetMaintenanceAlerts)
			alerts.POST("", controllers.CreateMaintenanceAlert)
			alerts.GET("/:id", controllers.GetMaintenanceAlert)
			alerts.PUT("/:id", controllers.UpdateMaintenanceAlert)
			alerts.DELETE("/:id", controllers.DeleteMaintenanceAlert)
			alerts.POST("/:id/trigger", controllers.TriggerMaintenanceAlert)
		}

		// Fuel log routes
		fuelLogs := api.Group("/fuel-logs")
		{
			fuelLogs.GET("", controllers.GetFuelLogs)
			fuelLogs.POST("", controllers.CreateFuelLog)
			fuelLogs.GET("/:id", controllers.GetFuelLog)
			fuelLogs.PUT("/:id", controllers.UpdateFuelLog)
			fuelLogs.DELETE("/:id", controllers.DeleteFuelLog)
		}

		// Dashboard routes
		api.GET("/dashboard/kpis", dashboardController.Kpis)

		// Report routes
		reports := api.Group("/reports")
		{
			reports.GET("/income", reportController.Income)
			reports.GET("/maintenance-costs", reportController.MaintenanceCosts)
			reports.GET("/fleet-availability", reportController.FleetAvailability)
		}
	}

	return r
}
