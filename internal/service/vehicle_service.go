package service

import (
	"context"
	"time"

	"fleet-service/internal/model"
)

type VehicleStore interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	GetByID(ctx context.Context, id uint) (*model.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	ListByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error)
	Update(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, id uint) error
}

type VehicleAssignmentCounter interface {
	CountByVehicleID(ctx context.Context, vehicleID uint) (int64, error)
}

type VehicleService struct {
	vehicles    VehicleStore
	assignments VehicleAssignmentCounter
}

func NewVehicleService(vehicles VehicleStore, assignments VehicleAssignmentCounter) *VehicleService {
	return &VehicleService{vehicles: vehicles, assignments: assignments}
}

type VehicleInput struct {
	PlateNumber         string
	Make                string
	Model               string
	Seats               int
	Fuel                string
	Odometer            float64
	Color               string
	Power               *int
	PurchasePrice       string
	Status              string
	ManufactureYear     *int
	AcquiredAt          string
	InsuranceExpiresAt  string
	InspectionExpiresAt string
	ImageURL            *string
	Notes               string
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(tripDateLayout, raw)
	if err != nil {
		return nil, ErrInvalidInput
	}
	return &parsed, nil
}

func (s *VehicleService) buildVehicle(input VehicleInput) (*model.Vehicle, error) {
	if input.PlateNumber == "" || input.Make == "" || input.Model == "" || input.Seats <= 0 {
		return nil, ErrInvalidInput
	}
	fuel := model.FuelType(input.Fuel)
	if !fuel.Valid() {
		return nil, ErrInvalidInput
	}
	status := model.VehicleStatus(input.Status)
	if input.Status == "" {
		status = model.VehicleStatusRunning
	}
	if !status.Valid() {
		return nil, ErrInvalidInput
	}
	if input.Odometer < 0 {
		return nil, ErrInvalidInput
	}

	purchasePrice, err := parseOptionalDecimal(input.PurchasePrice)
	if err != nil {
		return nil, err
	}
	acquiredAt, err := parseOptionalDate(input.AcquiredAt)
	if err != nil {
		return nil, err
	}
	insuranceExpiresAt, err := parseOptionalDate(input.InsuranceExpiresAt)
	if err != nil {
		return nil, err
	}
	inspectionExpiresAt, err := parseOptionalDate(input.InspectionExpiresAt)
	if err != nil {
		return nil, err
	}

	return &model.Vehicle{
		PlateNumber:         input.PlateNumber,
		Make:                input.Make,
		Model:               input.Model,
		Seats:               input.Seats,
		Fuel:                fuel,
		Odometer:            input.Odometer,
		Color:               input.Color,
		Power:               input.Power,
		PurchasePrice:       purchasePrice,
		Status:              status,
		ManufactureYear:     input.ManufactureYear,
		AcquiredAt:          acquiredAt,
		InsuranceExpiresAt:  insuranceExpiresAt,
		InspectionExpiresAt: inspectionExpiresAt,
		ImageURL:            input.ImageURL,
		Notes:               input.Notes,
	}, nil
}

func (s *VehicleService) Create(ctx context.Context, input VehicleInput) (*model.Vehicle, error) {
	vehicle, err := s.buildVehicle(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.vehicles.GetByPlate(ctx, vehicle.PlateNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id uint, input VehicleInput) (*model.Vehicle, error) {
	existing, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	updated, err := s.buildVehicle(input)
	if err != nil {
		return nil, err
	}

	if updated.PlateNumber != existing.PlateNumber {
		other, err := s.vehicles.GetByPlate(ctx, updated.PlateNumber)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrConflict
		}
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if updated.ImageURL == nil {
		updated.ImageURL = existing.ImageURL
	}

	if err := s.vehicles.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *VehicleService) GetByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}
	return vehicle, nil
}

func (s *VehicleService) List(ctx context.Context, status string) ([]model.Vehicle, error) {
	if status == "" {
		return s.vehicles.List(ctx)
	}
	vehicleStatus := model.VehicleStatus(status)
	if !vehicleStatus.Valid() {
		return nil, ErrInvalidInput
	}
	return s.vehicles.ListByStatus(ctx, vehicleStatus)
}

// SetImage records the stored image path and returns the previous one
// so the caller can clean it up.
func (s *VehicleService) SetImage(ctx context.Context, id uint, relPath string) (*model.Vehicle, string, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if vehicle == nil {
		return nil, "", ErrNotFound
	}

	var previous string
	if vehicle.ImageURL != nil {
		previous = *vehicle.ImageURL
	}
	vehicle.ImageURL = &relPath

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, "", err
	}
	return vehicle, previous, nil
}

// Delete refuses to remove a vehicle that still appears on trip
// assignments.
func (s *VehicleService) Delete(ctx context.Context, id uint) error {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return ErrNotFound
	}

	count, err := s.assignments.CountByVehicleID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}

	return s.vehicles.Delete(ctx, id)
}
