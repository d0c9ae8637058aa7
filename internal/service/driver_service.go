package service

import (
	"context"
	"time"

	"fleet-service/internal/model"
)

type DriverStore interface {
	Create(ctx context.Context, driver *model.Driver) error
	GetByID(ctx context.Context, id uint) (*model.Driver, error)
	GetByNationalID(ctx context.Context, nationalID string) (*model.Driver, error)
	List(ctx context.Context) ([]model.Driver, error)
	ListByStatus(ctx context.Context, status model.DriverStatus) ([]model.Driver, error)
	Update(ctx context.Context, driver *model.Driver) error
	Delete(ctx context.Context, id uint) error
}

type DriverAssignmentCounter interface {
	CountByDriverID(ctx context.Context, driverID uint) (int64, error)
}

type DriverService struct {
	drivers     DriverStore
	assignments DriverAssignmentCounter
}

func NewDriverService(drivers DriverStore, assignments DriverAssignmentCounter) *DriverService {
	return &DriverService{drivers: drivers, assignments: assignments}
}

type DriverInput struct {
	FirstName        string
	LastName         string
	NationalID       string
	BirthDate        string
	Sex              string
	Phone            string
	EmergencyPhone   string
	Address          string
	Email            string
	LicenseNumber    string
	LicenseExpiresAt string
	HiredAt          string
	PhotoURL         *string
	Status           string
	Notes            string
}

func parseRequiredDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(tripDateLayout, raw)
	if err != nil {
		return time.Time{}, ErrInvalidInput
	}
	return parsed, nil
}

func (s *DriverService) buildDriver(input DriverInput) (*model.Driver, error) {
	if input.FirstName == "" || input.LastName == "" || input.NationalID == "" ||
		input.Phone == "" || input.Address == "" || input.LicenseNumber == "" {
		return nil, ErrInvalidInput
	}
	if input.Sex != "M" && input.Sex != "F" {
		return nil, ErrInvalidInput
	}
	status := model.DriverStatus(input.Status)
	if input.Status == "" {
		status = model.DriverStatusActive
	}
	if !status.Valid() {
		return nil, ErrInvalidInput
	}

	birthDate, err := parseRequiredDate(input.BirthDate)
	if err != nil {
		return nil, err
	}
	licenseExpiresAt, err := parseRequiredDate(input.LicenseExpiresAt)
	if err != nil {
		return nil, err
	}
	hiredAt, err := parseRequiredDate(input.HiredAt)
	if err != nil {
		return nil, err
	}

	return &model.Driver{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		NationalID:       input.NationalID,
		BirthDate:        birthDate,
		Sex:              input.Sex,
		Phone:            input.Phone,
		EmergencyPhone:   input.EmergencyPhone,
		Address:          input.Address,
		Email:            input.Email,
		LicenseNumber:    input.LicenseNumber,
		LicenseExpiresAt: licenseExpiresAt,
		HiredAt:          hiredAt,
		PhotoURL:         input.PhotoURL,
		Status:           status,
		Notes:            input.Notes,
	}, nil
}

func (s *DriverService) Create(ctx context.Context, input DriverInput) (*model.Driver, error) {
	driver, err := s.buildDriver(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.drivers.GetByNationalID(ctx, driver.NationalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	if err := s.drivers.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

func (s *DriverService) Update(ctx context.Context, id uint, input DriverInput) (*model.Driver, error) {
	existing, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	updated, err := s.buildDriver(input)
	if err != nil {
		return nil, err
	}

	if updated.NationalID != existing.NationalID {
		other, err := s.drivers.GetByNationalID(ctx, updated.NationalID)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrConflict
		}
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if updated.PhotoURL == nil {
		updated.PhotoURL = existing.PhotoURL
	}

	if err := s.drivers.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DriverService) GetByID(ctx context.Context, id uint) (*model.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrNotFound
	}
	return driver, nil
}

func (s *DriverService) List(ctx context.Context, status string) ([]model.Driver, error) {
	if status == "" {
		return s.drivers.List(ctx)
	}
	driverStatus := model.DriverStatus(status)
	if !driverStatus.Valid() {
		return nil, ErrInvalidInput
	}
	return s.drivers.ListByStatus(ctx, driverStatus)
}

// SetPhoto records the stored photo path and returns the previous one
// so the caller can clean it up.
func (s *DriverService) SetPhoto(ctx context.Context, id uint, relPath string) (*model.Driver, string, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if driver == nil {
		return nil, "", ErrNotFound
	}

	var previous string
	if driver.PhotoURL != nil {
		previous = *driver.PhotoURL
	}
	driver.PhotoURL = &relPath

	if err := s.drivers.Update(ctx, driver); err != nil {
		return nil, "", err
	}
	return driver, previous, nil
}

func (s *DriverService) Delete(ctx context.Context, id uint) error {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if driver == nil {
		return ErrNotFound
	}

	count, err := s.assignments.CountByDriverID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}

	return s.drivers.Delete(ctx, id)
}
