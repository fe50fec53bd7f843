// services/report_service.go
package services

import (
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"rentautopro-backend/models"
	"rentautopro-backend/utils"
)

// ReportService runs the read-only aggregation queries behind the
// dashboard and report screens.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type VehicleKPIs struct {
	Total           int64   `json:"total"`
	Available       int64   `json:"available"`
	Rented          int64   `json:"rented"`
	Maintenance     int64   `json:"maintenance"`
	UtilizationRate float64 `json:"utilization_rate"`
}

type RentalKPIs struct {
	Active   int64           `json:"active"`
	Reserved int64           `json:"reserved"`
	Recent   []models.Rental `json:"recent"`
}

type ClientKPIs struct {
	Total int64 `json:"total"`
}

type FinancialKPIs struct {
	MonthRevenue         float64 `json:"month_revenue"`
	MonthMaintenanceCost float64 `json:"month_maintenance_cost"`
	NetProfit            float64 `json:"net_profit"`
}

type MaintenanceKPIs struct {
	Pending int64 `json:"pending"`
}

type DashboardKPIs struct {
	Vehicles    VehicleKPIs     `json:"vehicles"`
	Rentals     RentalKPIs      `json:"rentals"`
	Clients     ClientKPIs      `json:"clients"`
	Financials  FinancialKPIs   `json:"financials"`
	Maintenance MaintenanceKPIs `json:"maintenance"`
}

// Kpis assembles the dashboard summary as of now.
func (s *ReportService) Kpis() (*DashboardKPIs, error) {
	var kpis DashboardKPIs

	if err := s.db.Model(&models.Vehicle{}).Count(&kpis.Vehicles.Total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleStatusAvailable).Count(&kpis.Vehicles.Available).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleStatusRented).Count(&kpis.Vehicles.Rented).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleStatusMaintenance).Count(&kpis.Vehicles.Maintenance).Error; err != nil {
		return nil, err
	}
	kpis.Vehicles.UtilizationRate = FleetUtilization(kpis.Vehicles.Rented, kpis.Vehicles.Total)

	if err := s.db.Model(&models.Rental{}).Where("status = ?", models.RentalStatusActive).Count(&kpis.Rentals.Active).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Rental{}).Where("status = ?", models.RentalStatusReserved).Count(&kpis.Rentals.Reserved).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Vehicle").Preload("Client").
		Order("created_at DESC").Limit(5).Find(&kpis.Rentals.Recent).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Client{}).Count(&kpis.Clients.Total).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	if err := s.db.Model(&models.Rental{}).
		Where("created_at >= ? AND status <> ?", firstOfMonth, models.RentalStatusCancelled).
		Select("COALESCE(SUM(total_cost), 0)").Scan(&kpis.Financials.MonthRevenue).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Maintenance{}).
		Where("created_at >= ?", firstOfMonth).
		Select("COALESCE(SUM(cost), 0)").Scan(&kpis.Financials.MonthMaintenanceCost).Error; err != nil {
		return nil, err
	}
	kpis.Financials.NetProfit = kpis.Financials.MonthRevenue - kpis.Financials.MonthMaintenanceCost

	if err := s.db.Model(&models.Maintenance{}).
		Where("status = ?", models.MaintenanceStatusPending).Count(&kpis.Maintenance.Pending).Error; err != nil {
		return nil, err
	}

	return &kpis, nil
}

// FleetUtilization is the share of the fleet currently rented, as a
// percentage rounded to 2 decimals. Zero when the fleet is empty.
func FleetUtilization(rented, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(rented)/float64(total)*100*100) / 100
}

type MonthlyBucket struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

type VehicleIncome struct {
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"license_plate"`
	RentalCount  int64   `json:"rental_count"`
	TotalIncome  float64 `json:"total_income"`
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type IncomeReport struct {
	MonthlyIncome   []MonthlyBucket `json:"monthly_income"`
	IncomeByVehicle []VehicleIncome `json:"income_by_vehicle"`
	TotalIncome     float64         `json:"total_income"`
	Period          ReportPeriod    `json:"period"`
}

// Income sums rental revenue over the range, excluding cancelled rentals.
func (s *ReportService) Income(start, end time.Time) (*IncomeReport, error) {
	report := &IncomeReport{
		MonthlyIncome:   []MonthlyBucket{},
		IncomeByVehicle: []VehicleIncome{},
		Period:          ReportPeriod{Start: start, End: end},
	}

	var rentals []models.Rental
	if err := s.db.
		Where("created_at BETWEEN ? AND ? AND status <> ?", start, end, models.RentalStatusCancelled).
		Find(&rentals).Error; err != nil {
		return nil, err
	}
	report.MonthlyIncome = bucketByMonth(rentals, func(r models.Rental) (time.Time, float64) {
		return r.CreatedAt, r.TotalCost
	})
	for _, b := range report.MonthlyIncome {
		report.TotalIncome += b.Total
	}

	if err := s.db.Model(&models.Rental{}).
		Select("vehicles.brand, vehicles.model, vehicles.license_plate, COUNT(rentals.id) AS rental_count, COALESCE(SUM(rentals.total_cost), 0) AS total_income").
		Joins("JOIN vehicles ON vehicles.id = rentals.vehicle_id").
		Where("rentals.created_at BETWEEN ? AND ? AND rentals.status <> ?", start, end, models.RentalStatusCancelled).
		Group("vehicles.id, vehicles.brand, vehicles.model, vehicles.license_plate").
		Order("total_income DESC").
		Scan(&report.IncomeByVehicle).Error; err != nil {
		return nil, err
	}

	return report, nil
}

type VehicleCost struct {
	Brand            string  `json:"brand"`
	Model            string  `json:"model"`
	LicensePlate     string  `json:"license_plate"`
	MaintenanceCount int64   `json:"maintenance_count"`
	TotalCost        float64 `json:"total_cost"`
}

type TypeCost struct {
	Type  string  `json:"type"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

type MaintenanceCostReport struct {
	MonthlyCosts   []MonthlyBucket `json:"monthly_costs"`
	CostsByVehicle []VehicleCost   `json:"costs_by_vehicle"`
	CostsByType    []TypeCost      `json:"costs_by_type"`
	TotalCost      float64         `json:"total_cost"`
	Period         ReportPeriod    `json:"period"`
}

// MaintenanceCosts sums maintenance spending over the range.
func (s *ReportService) MaintenanceCosts(start, end time.Time) (*MaintenanceCostReport, error) {
	report := &MaintenanceCostReport{
		MonthlyCosts:   []MonthlyBucket{},
		CostsByVehicle: []VehicleCost{},
		CostsByType:    []TypeCost{},
		Period:         ReportPeriod{Start: start, End: end},
	}

	var maintenances []models.Maintenance
	if err := s.db.
		Where("created_at BETWEEN ? AND ?", start, end).
		Find(&maintenances).Error; err != nil {
		return nil, err
	}
	report.MonthlyCosts = bucketByMonth(maintenances, func(m models.Maintenance) (time.Time, float64) {
		if m.Cost == nil {
			return m.CreatedAt, 0
		}
		return m.CreatedAt, *m.Cost
	})
	for _, b := range report.MonthlyCosts {
		report.TotalCost += b.Total
	}

	if err := s.db.Model(&models.Maintenance{}).
		Select("vehicles.brand, vehicles.model, vehicles.license_plate, COUNT(maintenances.id) AS maintenance_count, COALESCE(SUM(maintenances.cost), 0) AS total_cost").
		Joins("JOIN vehicles ON vehicles.id = maintenances.vehicle_id").
		Where("maintenances.created_at BETWEEN ? AND ?", start, end).
		Group("vehicles.id, vehicles.brand, vehicles.model, vehicles.license_plate").
		Order("total_cost DESC").
		Scan(&report.CostsByVehicle).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Maintenance{}).
		Select("type, COUNT(id) AS count, COALESCE(SUM(cost), 0) AS total").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("type").
		Scan(&report.CostsByType).Error; err != nil {
		return nil, err
	}

	return report, nil
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type RentedVehicle struct {
	ID           string `json:"id"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
	Status       string `json:"status"`
	RentalCount  int64  `json:"rental_count"`
}

type FleetAvailabilityReport struct {
	StatusDistribution []StatusCount    `json:"status_distribution"`
	MostRentedVehicles []RentedVehicle  `json:"most_rented_vehicles"`
	MaintenanceDue     []models.Vehicle `json:"maintenance_due"`
}

// FleetAvailability reports the current status split, the historical
// top-10 by rental count (zero-rental vehicles included), and the
// non-in-maintenance vehicles carrying an active alert.
func (s *ReportService) FleetAvailability() (*FleetAvailabilityReport, error) {
	report := &FleetAvailabilityReport{
		StatusDistribution: []StatusCount{},
		MostRentedVehicles: []RentedVehicle{},
		MaintenanceDue:     []models.Vehicle{},
	}

	if err := s.db.Model(&models.Vehicle{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&report.StatusDistribution).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Vehicle{}).
		Select("vehicles.id, vehicles.brand, vehicles.model, vehicles.license_plate, vehicles.status, COUNT(rentals.id) AS rental_count").
		Joins("LEFT JOIN rentals ON rentals.vehicle_id = vehicles.id").
		Group("vehicles.id, vehicles.brand, vehicles.model, vehicles.license_plate, vehicles.status").
		Order("rental_count DESC").
		Limit(10).
		Scan(&report.MostRentedVehicles).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("MaintenanceAlerts").
		Where("status <> ?", models.VehicleStatusMaintenance).
		Where("id IN (?)", s.db.Model(&models.MaintenanceAlert{}).
			Select("vehicle_id").Where("is_active = ?", true)).
		Find(&report.MaintenanceDue).Error; err != nil {
		return nil, err
	}

	return report, nil
}

// DefaultReportRange is the past six months up to now.
func DefaultReportRange() (time.Time, time.Time) {
	now := time.Now()
	return now.AddDate(0, -6, 0), now
}

func bucketByMonth[T any](rows []T, extract func(T) (time.Time, float64)) []MonthlyBucket {
	totals := map[string]float64{}
	for _, row := range rows {
		at, amount := extract(row)
		totals[utils.MonthKey(at)] += amount
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	buckets := make([]MonthlyBucket, 0, len(months))
	for _, m := range months {
		buckets = append(buckets, MonthlyBucket{Month: m, Total: totals[m]})
	}
	return buckets
}
