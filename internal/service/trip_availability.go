package service

import (
	"context"
	"time"

	"fleet-service/internal/model"
)

// ConflictingTrip identifies a trip that already occupies the requested
// vehicle or driver on the requested departure date.
type ConflictingTrip struct {
	ID   uint           `json:"id"`
	Code string         `json:"code"`
	Type model.TripType `json:"type"`
	Name string         `json:"name"`
}

type AvailabilityResult struct {
	Available bool              `json:"available"`
	Conflicts []ConflictingTrip `json:"conflicts"`
}

// CheckAvailability reports whether a vehicle/driver pair is free on the
// given departure date. Only trips departing on exactly that date count
// as conflicts; a conflict on either the vehicle or the driver makes the
// pair unavailable.
func (s *TripService) CheckAvailability(ctx context.Context, date string, vehicleID, driverID uint) (*AvailabilityResult, error) {
	if vehicleID == 0 || driverID == 0 {
		return nil, ErrInvalidInput
	}
	departureDate, err := time.Parse(tripDateLayout, date)
	if err != nil {
		return nil, ErrInvalidInput
	}

	trips, err := s.trips.FindConflicts(ctx, departureDate, vehicleID, driverID)
	if err != nil {
		return nil, err
	}

	conflicts := make([]ConflictingTrip, 0, len(trips))
	for _, trip := range trips {
		conflicts = append(conflicts, ConflictingTrip{
			ID:   trip.ID,
			Code: trip.Code,
			Type: trip.Type,
			Name: trip.Name,
		})
	}

	return &AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}
