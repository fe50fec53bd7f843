package services

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrVehicleUnavailable = errors.New("vehicle is not available")
)
