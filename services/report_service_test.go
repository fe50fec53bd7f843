package services

import (
	"testing"
	"time"

	"rentautopro-backend/models"
)

func TestFleetUtilization(t *testing.T) {
	if got := FleetUtilization(0, 0); got != 0 {
		t.Fatalf("FleetUtilization empty fleet = %v; want 0", got)
	}
	if got := FleetUtilization(1, 3); got != 33.33 {
		t.Fatalf("FleetUtilization = %v; want 33.33", got)
	}
	if got := FleetUtilization(2, 4); got != 50 {
		t.Fatalf("FleetUtilization = %v; want 50", got)
	}
}

func TestKpis(t *testing.T) {
	db := newTestDB(t)
	rentalSvc := NewRentalService(db)
	reportSvc := NewReportService(db)

	v1 := seedVehicle(t, db, 50)
	v2 := seedVehicle(t, db, 80)
	seedVehicle(t, db, 60) // stays available
	client := seedClient(t, db)

	if _, err := rentalSvc.Create(CreateRentalParams{
		VehicleID: v1.ID, ClientID: client.ID,
		StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 3),
		Status: models.RentalStatusActive,
	}); err != nil {
		t.Fatalf("Create rental: %v", err)
	}
	if _, err := rentalSvc.Create(CreateRentalParams{
		VehicleID: v2.ID, ClientID: client.ID,
		StartDate: date(2024, 1, 5), EndDate: date(2024, 1, 6),
	}); err != nil {
		t.Fatalf("Create rental: %v", err)
	}

	cost := 120.0
	maintenance := models.Maintenance{
		VehicleID: v1.ID,
		Type:      models.MaintenanceTypeCorrective,
		Cost:      &cost,
		Status:    models.MaintenanceStatusPending,
	}
	if err := db.Create(&maintenance).Error; err != nil {
		t.Fatalf("Create maintenance: %v", err)
	}

	kpis, err := reportSvc.Kpis()
	if err != nil {
		t.Fatalf("Kpis error: %v", err)
	}

	if kpis.Vehicles.Total != 3 || kpis.Vehicles.Rented != 2 || kpis.Vehicles.Available != 1 {
		t.Fatalf("vehicle counts = %+v", kpis.Vehicles)
	}
	if kpis.Vehicles.UtilizationRate != 66.67 {
		t.Fatalf("utilization = %v; want 66.67", kpis.Vehicles.UtilizationRate)
	}
	if kpis.Rentals.Active != 1 || kpis.Rentals.Reserved != 1 {
		t.Fatalf("rental counts = %+v", kpis.Rentals)
	}
	if kpis.Clients.Total != 1 {
		t.Fatalf("client total = %d; want 1", kpis.Clients.Total)
	}
	// Both rentals were created this month: 150 + 160 = 310
	if kpis.Financials.MonthRevenue != 310 {
		t.Fatalf("month revenue = %v; want 310", kpis.Financials.MonthRevenue)
	}
	if kpis.Financials.MonthMaintenanceCost != 120 {
		t.Fatalf("month maintenance cost = %v; want 120", kpis.Financials.MonthMaintenanceCost)
	}
	if kpis.Financials.NetProfit != 190 {
		t.Fatalf("net profit = %v; want 190", kpis.Financials.NetProfit)
	}
	if kpis.Maintenance.Pending != 1 {
		t.Fatalf("pending maintenances = %d; want 1", kpis.Maintenance.Pending)
	}
	if len(kpis.Rentals.Recent) != 2 {
		t.Fatalf("recent rentals = %d; want 2", len(kpis.Rentals.Recent))
	}
}

func TestIncomeReport(t *testing.T) {
	db := newTestDB(t)
	rentalSvc := NewRentalService(db)
	reportSvc := NewReportService(db)
	client := seedClient(t, db)

	rates := []float64{50, 80, 40}
	var rentals []*models.Rental
	for _, rate := range rates {
		v := seedVehicle(t, db, rate)
		r, err := rentalSvc.Create(CreateRentalParams{
			VehicleID: v.ID, ClientID: client.ID,
			StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 3),
		})
		if err != nil {
			t.Fatalf("Create rental: %v", err)
		}
		rentals = append(rentals, r)
	}

	// Cancel the cheapest rental; it must drop out of the report
	if err := db.Model(&models.Rental{}).
		Where("id = ?", rentals[2].ID).
		Update("status", models.RentalStatusCancelled).Error; err != nil {
		t.Fatalf("cancel rental: %v", err)
	}

	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(0, 0, 1)
	report, err := reportSvc.Income(start, end)
	if err != nil {
		t.Fatalf("Income error: %v", err)
	}

	// 3 days at 50 and 80: 150 + 240 = 390
	if report.TotalIncome != 390 {
		t.Fatalf("total income = %v; want 390", report.TotalIncome)
	}
	var bucketSum float64
	for _, b := range report.MonthlyIncome {
		bucketSum += b.Total
	}
	if bucketSum != report.TotalIncome {
		t.Fatalf("monthly buckets sum to %v; want %v", bucketSum, report.TotalIncome)
	}
	if len(report.IncomeByVehicle) != 2 {
		t.Fatalf("income_by_vehicle rows = %d; want 2", len(report.IncomeByVehicle))
	}
	// Ordered by revenue descending
	if report.IncomeByVehicle[0].TotalIncome < report.IncomeByVehicle[1].TotalIncome {
		t.Fatal("income_by_vehicle not ordered by revenue desc")
	}
}

func TestMaintenanceCostReport(t *testing.T) {
	db := newTestDB(t)
	reportSvc := NewReportService(db)
	v := seedVehicle(t, db, 50)

	costs := map[string]float64{
		models.MaintenanceTypePreventive: 100,
		models.MaintenanceTypeCorrective: 250,
	}
	for mType, cost := range costs {
		c := cost
		m := models.Maintenance{VehicleID: v.ID, Type: mType, Cost: &c}
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("Create maintenance: %v", err)
		}
	}

	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(0, 0, 1)
	report, err := reportSvc.MaintenanceCosts(start, end)
	if err != nil {
		t.Fatalf("MaintenanceCosts error: %v", err)
	}

	if report.TotalCost != 350 {
		t.Fatalf("total cost = %v; want 350", report.TotalCost)
	}
	if len(report.CostsByType) != 2 {
		t.Fatalf("costs_by_type rows = %d; want 2", len(report.CostsByType))
	}
	if len(report.CostsByVehicle) != 1 || report.CostsByVehicle[0].MaintenanceCount != 2 {
		t.Fatalf("costs_by_vehicle = %+v", report.CostsByVehicle)
	}
}

func TestFleetAvailabilityReport(t *testing.T) {
	db := newTestDB(t)
	rentalSvc := NewRentalService(db)
	reportSvc := NewReportService(db)
	client := seedClient(t, db)

	rented := seedVehicle(t, db, 50)
	idle := seedVehicle(t, db, 60) // never rented
	if _, err := rentalSvc.Create(CreateRentalParams{
		VehicleID: rented.ID, ClientID: client.ID,
		StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 3),
	}); err != nil {
		t.Fatalf("Create rental: %v", err)
	}

	alert := models.MaintenanceAlert{
		VehicleID:      idle.ID,
		AlertType:      models.AlertTypeKM,
		ThresholdValue: 5000,
		IsActive:       true,
	}
	if err := db.Create(&alert).Error; err != nil {
		t.Fatalf("Create alert: %v", err)
	}

	report, err := reportSvc.FleetAvailability()
	if err != nil {
		t.Fatalf("FleetAvailability error: %v", err)
	}

	var total int64
	for _, s := range report.StatusDistribution {
		total += s.Count
	}
	if total != 2 {
		t.Fatalf("status distribution covers %d vehicles; want 2", total)
	}

	// Left join keeps the zero-rental vehicle in the ranking
	if len(report.MostRentedVehicles) != 2 {
		t.Fatalf("most_rented_vehicles rows = %d; want 2", len(report.MostRentedVehicles))
	}
	if report.MostRentedVehicles[0].RentalCount != 1 || report.MostRentedVehicles[1].RentalCount != 0 {
		t.Fatalf("rental counts = %+v", report.MostRentedVehicles)
	}

	if len(report.MaintenanceDue) != 1 || report.MaintenanceDue[0].ID != idle.ID {
		t.Fatalf("maintenance_due = %+v", report.MaintenanceDue)
	}
}
