package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentautopro-backend/config"
	"rentautopro-backend/models"
	"rentautopro-backend/routes"
	"rentautopro-backend/services"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Client{},
		&models.Rental{},
		&models.Maintenance{},
		&models.MaintenanceAlert{},
		&models.FuelLog{},
	)
}

func main() {
	alertService := services.NewAlertService(config.DB)
	alertService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
