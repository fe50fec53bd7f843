package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentautopro-backend/config"
	"rentautopro-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	config.DB = db
	return db
}

func vehicleRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/vehicles", GetVehicles)
	r.POST("/vehicles", CreateVehicle)
	r.GET("/vehicles/:id", GetVehicle)
	r.PUT("/vehicles/:id", UpdateVehicle)
	r.DELETE("/vehicles/:id", DeleteVehicle)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func TestCreateVehicle(t *testing.T) {
	setupTestDB(t)
	r := vehicleRouter()

	w, resp := doJSON(t, r, http.MethodPost, "/vehicles", gin.H{
		"brand":         "Toyota",
		"model":         "Corolla",
		"year":          2022,
		"license_plate": "ABC-123",
		"daily_rate":    50.0,
		"current_km":    1000,
		"fuel_type":     "gasoline",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201 (body %s)", w.Code, w.Body.String())
	}
	if resp["success"] != true {
		t.Fatalf("success = %v; want true", resp["success"])
	}
	data := resp["data"].(map[string]interface{})
	if data["license_plate"] != "ABC-123" {
		t.Fatalf("license_plate = %v", data["license_plate"])
	}
	if data["status"] != models.VehicleStatusAvailable {
		t.Fatalf("status = %v; want available", data["status"])
	}
}

func TestCreateVehicleDuplicatePlate(t *testing.T) {
	setupTestDB(t)
	r := vehicleRouter()

	payload := gin.H{
		"brand":         "Toyota",
		"model":         "Corolla",
		"year":          2022,
		"license_plate": "DUP-001",
		"daily_rate":    50.0,
	}
	if w, _ := doJSON(t, r, http.MethodPost, "/vehicles", payload); w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d; want 201", w.Code)
	}

	w, resp := doJSON(t, r, http.MethodPost, "/vehicles", payload)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d; want 409", w.Code)
	}
	if resp["success"] != false {
		t.Fatalf("success = %v; want false", resp["success"])
	}
}

func TestCreateVehicleValidation(t *testing.T) {
	setupTestDB(t)
	r := vehicleRouter()

	// Missing brand, plate and daily_rate
	w, resp := doJSON(t, r, http.MethodPost, "/vehicles", gin.H{
		"model": "Corolla",
		"year":  2022,
	})
	if w.Code != 422 {
		t.Fatalf("status = %d; want 422", w.Code)
	}
	errs := resp["errors"].(map[string]interface{})
	for _, field := range []string{"brand", "license_plate", "daily_rate"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected a validation error for %q, got %v", field, errs)
		}
	}
}

func TestGetVehicleNotFound(t *testing.T) {
	setupTestDB(t)
	r := vehicleRouter()

	w, _ := doJSON(t, r, http.MethodGet, "/vehicles/1f0a2b9e-1d1f-4a7e-9a1c-0cbe6a1a2b3c", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/vehicles/not-a-uuid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400 for malformed id", w.Code)
	}
}

func TestGetVehiclesPagination(t *testing.T) {
	db := setupTestDB(t)
	r := vehicleRouter()

	for i := 0; i < 20; i++ {
		v := models.Vehicle{
			Brand:        "Toyota",
			Model:        "Corolla",
			Year:         2022,
			LicensePlate: fmt.Sprintf("PAG-%03d", i),
			Status:       models.VehicleStatusAvailable,
			DailyRate:    50,
		}
		if err := db.Create(&v).Error; err != nil {
			t.Fatalf("seed vehicle: %v", err)
		}
	}

	w, resp := doJSON(t, r, http.MethodGet, "/vehicles?page=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}

	page := resp["data"].(map[string]interface{})
	if page["total"].(float64) != 20 {
		t.Fatalf("total = %v; want 20", page["total"])
	}
	if page["current_page"].(float64) != 2 || page["last_page"].(float64) != 2 {
		t.Fatalf("page metadata = %v/%v; want 2/2", page["current_page"], page["last_page"])
	}
	rows := page["data"].([]interface{})
	if len(rows) != 5 {
		t.Fatalf("page 2 has %d rows; want 5", len(rows))
	}
}

func TestGetVehiclesStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	r := vehicleRouter()

	for i, status := range []string{models.VehicleStatusAvailable, models.VehicleStatusRented, models.VehicleStatusRented} {
		v := models.Vehicle{
			Brand:        "Ford",
			Model:        "Focus",
			Year:         2021,
			LicensePlate: fmt.Sprintf("FLT-%d", i),
			Status:       status,
			DailyRate:    40,
		}
		if err := db.Create(&v).Error; err != nil {
			t.Fatalf("seed vehicle: %v", err)
		}
	}

	_, resp := doJSON(t, r, http.MethodGet, "/vehicles?status=rented", nil)
	page := resp["data"].(map[string]interface{})
	if page["total"].(float64) != 2 {
		t.Fatalf("rented total = %v; want 2", page["total"])
	}
}

func TestUpdateVehiclePartial(t *testing.T) {
	db := setupTestDB(t)
	r := vehicleRouter()

	v := models.Vehicle{
		Brand: "Toyota", Model: "Corolla", Year: 2022,
		LicensePlate: "UPD-001", Status: models.VehicleStatusAvailable, DailyRate: 50,
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	w, resp := doJSON(t, r, http.MethodPut, "/vehicles/"+v.ID.String(), gin.H{
		"daily_rate": 65.0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200 (body %s)", w.Code, w.Body.String())
	}
	data := resp["data"].(map[string]interface{})
	if data["daily_rate"].(float64) != 65 {
		t.Fatalf("daily_rate = %v; want 65", data["daily_rate"])
	}
	// Untouched fields survive the partial update
	if data["brand"] != "Toyota" || data["license_plate"] != "UPD-001" {
		t.Fatalf("unexpected vehicle after update: %v", data)
	}
}

func TestDeleteVehicleCascade(t *testing.T) {
	db := setupTestDB(t)
	r := vehicleRouter()

	v := models.Vehicle{
		Brand: "Toyota", Model: "Corolla", Year: 2022,
		LicensePlate: "DEL-001", Status: models.VehicleStatusAvailable, DailyRate: 50,
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	client := models.Client{FullName: "Ana Torres", DocumentID: "DOC-1", Phone: "555-0100"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}

	now := time.Now()
	if err := db.Create(&models.Maintenance{VehicleID: v.ID, Type: models.MaintenanceTypePreventive}).Error; err != nil {
		t.Fatalf("seed maintenance: %v", err)
	}
	if err := db.Create(&models.MaintenanceAlert{VehicleID: v.ID, AlertType: models.AlertTypeKM, ThresholdValue: 5000, IsActive: true}).Error; err != nil {
		t.Fatalf("seed alert: %v", err)
	}
	if err := db.Create(&models.FuelLog{VehicleID: v.ID, Date: now, KM: 1000}).Error; err != nil {
		t.Fatalf("seed fuel log: %v", err)
	}
	if err := db.Create(&models.Rental{
		VehicleID: v.ID, ClientID: client.ID,
		StartDate: now, EndDate: now.AddDate(0, 0, 2),
		TotalCost: 150, Status: models.RentalStatusCompleted,
	}).Error; err != nil {
		t.Fatalf("seed rental: %v", err)
	}

	w, _ := doJSON(t, r, http.MethodDelete, "/vehicles/"+v.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200 (body %s)", w.Code, w.Body.String())
	}

	var vehicles, maintenances, alerts, fuelLogs, rentals int64
	db.Model(&models.Vehicle{}).Count(&vehicles)
	db.Model(&models.Maintenance{}).Count(&maintenances)
	db.Model(&models.MaintenanceAlert{}).Count(&alerts)
	db.Model(&models.FuelLog{}).Count(&fuelLogs)
	db.Model(&models.Rental{}).Count(&rentals)

	if vehicles != 0 || maintenances != 0 || alerts != 0 || fuelLogs != 0 {
		t.Errorf("leftover rows after delete: vehicles=%d maintenances=%d alerts=%d fuel_logs=%d",
			vehicles, maintenances, alerts, fuelLogs)
	}
	// Rentals are the financial history and must survive
	if rentals != 1 {
		t.Errorf("rentals count = %d; want 1", rentals)
	}
}
