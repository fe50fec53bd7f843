package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentautopro-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Vehicle{},
		&models.Client{},
		&models.Rental{},
		&models.Maintenance{},
		&models.MaintenanceAlert{},
		&models.FuelLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedVehicle(t *testing.T, db *gorm.DB, rate float64) *models.Vehicle {
	t.Helper()
	vehicle := &models.Vehicle{
		Brand:        "Toyota",
		Model:        "Corolla",
		Year:         2022,
		LicensePlate: fmt.Sprintf("PLATE-%d", vehicleSeq(db)),
		Status:       models.VehicleStatusAvailable,
		CurrentKM:    1000,
		FuelType:     "gasoline",
		DailyRate:    rate,
	}
	if err := db.Create(vehicle).Error; err != nil {
		t.Fatalf("failed to seed vehicle: %v", err)
	}
	return vehicle
}

func vehicleSeq(db *gorm.DB) int64 {
	var n int64
	db.Model(&models.Vehicle{}).Count(&n)
	return n
}

func seedClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	var n int64
	db.Model(&models.Client{}).Count(&n)
	client := &models.Client{
		FullName:   "Ana Torres",
		DocumentID: fmt.Sprintf("DOC-%d", n),
		Phone:      "555-0100",
		Email:      "ana@example.com",
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	return client
}
