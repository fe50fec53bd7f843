package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"rentautopro-backend/models"
	"rentautopro-backend/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeRentalCost(t *testing.T) {
	// daily_rate=50, 2024-01-01..2024-01-03 -> 3 days * 50 = 150
	got := ComputeRentalCost(date(2024, 1, 1), date(2024, 1, 3), 50)
	if got != 150 {
		t.Fatalf("ComputeRentalCost = %v; want 150", got)
	}

	// single-night rental still bills both days
	got = ComputeRentalCost(date(2024, 1, 1), date(2024, 1, 2), 80)
	if got != 160 {
		t.Fatalf("ComputeRentalCost = %v; want 160", got)
	}
}

func TestCreateRental(t *testing.T) {
	db := newTestDB(t)
	svc := NewRentalService(db)
	vehicle := seedVehicle(t, db, 50)
	client := seedClient(t, db)

	rental, err := svc.Create(CreateRentalParams{
		VehicleID: vehicle.ID,
		ClientID:  client.ID,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 3),
		StartKM:   1000,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if rental.TotalCost != 150 {
		t.Fatalf("TotalCost = %v; want 150", rental.TotalCost)
	}
	if rental.Status != models.RentalStatusReserved {
		t.Fatalf("Status = %q; want reserved", rental.Status)
	}
	if rental.Vehicle == nil || rental.Client == nil {
		t.Fatal("expected vehicle and client to be loaded")
	}

	var updated models.Vehicle
	if err := db.First(&updated, "id = ?", vehicle.ID).Error; err != nil {
		t.Fatalf("failed to reload vehicle: %v", err)
	}
	if updated.Status != models.VehicleStatusRented {
		t.Fatalf("vehicle status = %q; want rented", updated.Status)
	}
}

func TestCreateRentalCallerStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewRentalService(db)
	vehicle := seedVehicle(t, db, 30)
	client := seedClient(t, db)

	rental, err := svc.Create(CreateRentalParams{
		VehicleID: vehicle.ID,
		ClientID:  client.ID,
		StartDate: date(2024, 2, 1),
		EndDate:   date(2024, 2, 5),
		Status:    models.RentalStatusActive,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rental.Status != models.RentalStatusActive {
		t.Fatalf("Status = %q; want active", rental.Status)
	}
}

func TestCreateRentalVehicleUnavailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewRentalService(db)
	vehicle := seedVehicle(t, db, 50)
	client := seedClient(t, db)

	params := CreateRentalParams{
		VehicleID: vehicle.ID,
		ClientID:  client.ID,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 3),
	}
	if _, err := svc.Create(params); err != nil {
		t.Fatalf("first Create error: %v", err)
	}

	// Vehicle is now rented; a second rental must be rejected
	_, err := svc.Create(params)
	if !errors.Is(err, ErrVehicleUnavailable) {
		t.Fatalf("err = %v; want ErrVehicleUnavailable", err)
	}

	var count int64
	db.Model(&models.Rental{}).Count(&count)
	if count != 1 {
		t.Fatalf("rental count = %d; want 1 (no row from the failed create)", count)
	}
}

func TestCreateRentalMissingReferences(t *testing.T) {
	db := newTestDB(t)
	svc := NewRentalService(db)
	vehicle := seedVehicle(t, db, 50)

	_, err := svc.Create(CreateRentalParams{
		VehicleID: vehicle.ID,
		ClientID:  uuid.New(),
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 3),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v; want ErrNotFound for missing client", err)
	}

	_, err = svc.Create(CreateRentalParams{
		VehicleID: uuid.New(),
		ClientID:  uuid.New(),
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 3),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v; want ErrNotFound for missing vehicle", err)
	}
}

func TestCompleteRental(t *testing.T) {
	db := newTestDB(t)
	svc := NewRentalService(db)
	vehicle := seedVehicle(t, db, 50)
	client := seedClient(t, db)

	rental, err := svc.Create(CreateRentalParams{
		VehicleID: vehicle.ID,
		ClientID:  client.ID,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 3),
		StartKM:   1000,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	completed, err := svc.Complete(rental.ID, 1350)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if completed.Status != models.RentalStatusCompleted {
		t.Fatalf("Status = %q; want completed", completed.Status)
	}
	if completed.EndKM == nil || *completed.EndKM != 1350 {
		t.Fatalf("EndKM = %v; want 1350", completed.EndKM)
	}

	var updated models.Vehicle
	db.First(&updated, "id = ?", vehicle.ID)
	if updated.Status != models.VehicleStatusAvailable {
		t.Fatalf("vehicle status = %q; want available", updated.Status)
	}
	if updated.CurrentKM != 1350 {
		t.Fatalf("vehicle current_km = %d; want 1350", updated.CurrentKM)
	}
}

func TestCompleteRentalEndKMBelowStart(t *testing.T) {
	db := newTestDB(t)
	svc := NewRentalService(db)
	vehicle := seedVehicle(t, db, 50)
	client := seedClient(t, db)

	rental, err := svc.Create(CreateRentalParams{
		VehicleID: vehicle.ID,
		ClientID:  client.ID,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 3),
		StartKM:   1000,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	_, err = svc.Complete(rental.ID, 900)
	var fieldErrs utils.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("err = %v; want field validation error", err)
	}
	if _, ok := fieldErrs["end_km"]; !ok {
		t.Fatalf("expected an end_km validation error, got %v", fieldErrs)
	}

	// Rental and vehicle must be untouched
	var reloaded models.Rental
	db.First(&reloaded, "id = ?", rental.ID)
	if reloaded.Status != models.RentalStatusReserved || reloaded.EndKM != nil {
		t.Fatalf("rental changed after failed completion: status=%q end_km=%v", reloaded.Status, reloaded.EndKM)
	}
	var updated models.Vehicle
	db.First(&updated, "id = ?", vehicle.ID)
	if updated.Status != models.VehicleStatusRented || updated.CurrentKM != 1000 {
		t.Fatalf("vehicle changed after failed completion: status=%q km=%d", updated.Status, updated.CurrentKM)
	}
}

func TestCompleteRentalNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewRentalService(db)

	_, err := svc.Complete(uuid.New(), 1200)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v; want ErrNotFound", err)
	}
}
