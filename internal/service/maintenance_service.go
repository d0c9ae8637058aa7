package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
)

// Odometer thresholds (km) driving notification severity.
const (
	urgentThresholdKm  = 500
	warningThresholdKm = 1000
)

// NotificationEvent is the outcome of evaluating a vehicle against its latest
// maintenance record.
type NotificationEvent struct {
	Severity model.Severity
	Message  string
}

// EvaluateMaintenance applies the due-maintenance policy to a vehicle's current
// odometer and the next-due odometer of its latest maintenance. Checked
// high-to-low urgency, first match wins; beyond the warning threshold no event
// is produced.
func EvaluateMaintenance(plate string, currentOdometer, nextDueOdometer float64) (NotificationEvent, bool) {
	remaining := nextDueOdometer - currentOdometer
	switch {
	case remaining <= urgentThresholdKm:
		return NotificationEvent{
			Severity: model.SeverityRed,
			Message:  fmt.Sprintf("URGENT: maintenance needed for %s within %d km", plate, urgentThresholdKm),
		}, true
	case remaining <= warningThresholdKm:
		return NotificationEvent{
			Severity: model.SeverityYellow,
			Message:  fmt.Sprintf("Maintenance due soon for %s within %d km", plate, warningThresholdKm),
		}, true
	default:
		return NotificationEvent{}, false
	}
}

type MaintenanceVehicleStore interface {
	List(ctx context.Context) ([]model.Vehicle, error)
	GetByID(ctx context.Context, id uint) (*model.Vehicle, error)
	Update(ctx context.Context, vehicle *model.Vehicle) error
}

type MaintenanceStore interface {
	Create(ctx context.Context, maintenance *model.Maintenance) error
	GetByID(ctx context.Context, id uint) (*model.Maintenance, error)
	List(ctx context.Context) ([]model.Maintenance, error)
	ListByVehicleID(ctx context.Context, vehicleID uint) ([]model.Maintenance, error)
	LatestByVehicleID(ctx context.Context, vehicleID uint) (*model.Maintenance, error)
	Update(ctx context.Context, maintenance *model.Maintenance) error
	DeleteWithNotifications(ctx context.Context, id uint) error
}

type NotificationStore interface {
	Create(ctx context.Context, notification *model.Notification) error
	GetByID(ctx context.Context, id uint) (*model.Notification, error)
	ListUnread(ctx context.Context) ([]model.Notification, error)
	HasUnread(ctx context.Context, vehicleID, maintenanceID uint, severity model.Severity) (bool, error)
	MarkRead(ctx context.Context, id uint) error
}

type MaintenanceService struct {
	vehicles      MaintenanceVehicleStore
	maintenances  MaintenanceStore
	notifications NotificationStore
}

func NewMaintenanceService(
	vehicles MaintenanceVehicleStore,
	maintenances MaintenanceStore,
	notifications NotificationStore,
) *MaintenanceService {
	return &MaintenanceService{
		vehicles:      vehicles,
		maintenances:  maintenances,
		notifications: notifications,
	}
}

// RefreshNotifications re-evaluates every vehicle against its latest
// maintenance and persists missing notifications. An unread notification for
// the same (vehicle, maintenance, severity) suppresses a duplicate. Vehicles
// without maintenance history are skipped.
//
// This runs on demand from the maintenance list view, not on a schedule, so
// notifications can lag odometer updates between views.
func (s *MaintenanceService) RefreshNotifications(ctx context.Context) error {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return err
	}

	for _, vehicle := range vehicles {
		latest, err := s.maintenances.LatestByVehicleID(ctx, vehicle.ID)
		if err != nil {
			return err
		}
		if latest == nil {
			continue
		}

		event, ok := EvaluateMaintenance(vehicle.PlateNumber, vehicle.Odometer, latest.NextDueOdometer)
		if !ok {
			continue
		}

		exists, err := s.notifications.HasUnread(ctx, vehicle.ID, latest.ID, event.Severity)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		notification := &model.Notification{
			VehicleID:     vehicle.ID,
			MaintenanceID: latest.ID,
			Message:       event.Message,
			Severity:      event.Severity,
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			return err
		}
	}
	return nil
}

type MaintenanceInput struct {
	VehicleID        uint
	ServiceType      string
	Cost             string
	ServiceDate      string
	Odometer         float64
	NextDueOdometer  float64
	Description      string
	Provider         string
	InvoiceReference string
	InvoiceURL       *string
	Parts            []string
}

func (s *MaintenanceService) parseInput(input MaintenanceInput) (decimal.Decimal, time.Time, error) {
	if input.ServiceType == "" {
		return decimal.Decimal{}, time.Time{}, ErrInvalidInput
	}
	if input.NextDueOdometer <= input.Odometer {
		return decimal.Decimal{}, time.Time{}, ErrInvalidInput
	}
	cost, err := decimal.NewFromString(input.Cost)
	if err != nil {
		return decimal.Decimal{}, time.Time{}, ErrInvalidInput
	}
	serviceDate, err := time.Parse("2006-01-02", input.ServiceDate)
	if err != nil {
		return decimal.Decimal{}, time.Time{}, ErrInvalidInput
	}
	return cost, serviceDate, nil
}

func (s *MaintenanceService) Create(ctx context.Context, principal model.Principal, input MaintenanceInput) (*model.Maintenance, error) {
	cost, serviceDate, err := s.parseInput(input)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}

	maintenance := &model.Maintenance{
		VehicleID:        input.VehicleID,
		ServiceType:      input.ServiceType,
		Cost:             cost,
		ServiceDate:      serviceDate,
		Odometer:         input.Odometer,
		NextDueOdometer:  input.NextDueOdometer,
		Description:      input.Description,
		Provider:         input.Provider,
		InvoiceReference: input.InvoiceReference,
		InvoiceURL:       input.InvoiceURL,
		Parts:            input.Parts,
		CreatedBy:        &principal.UserID,
	}
	if err := s.maintenances.Create(ctx, maintenance); err != nil {
		return nil, err
	}

	// A service visit records the freshest odometer reading we have.
	if input.Odometer > vehicle.Odometer {
		vehicle.Odometer = input.Odometer
		if err := s.vehicles.Update(ctx, vehicle); err != nil {
			return nil, err
		}
	}

	return maintenance, nil
}

func (s *MaintenanceService) Update(ctx context.Context, id uint, input MaintenanceInput) (*model.Maintenance, error) {
	maintenance, err := s.maintenances.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if maintenance == nil {
		return nil, ErrNotFound
	}

	cost, serviceDate, err := s.parseInput(input)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}

	maintenance.VehicleID = input.VehicleID
	maintenance.ServiceType = input.ServiceType
	maintenance.Cost = cost
	maintenance.ServiceDate = serviceDate
	maintenance.Odometer = input.Odometer
	maintenance.NextDueOdometer = input.NextDueOdometer
	maintenance.Description = input.Description
	maintenance.Provider = input.Provider
	maintenance.InvoiceReference = input.InvoiceReference
	if input.InvoiceURL != nil {
		maintenance.InvoiceURL = input.InvoiceURL
	}
	maintenance.Parts = input.Parts

	if err := s.maintenances.Update(ctx, maintenance); err != nil {
		return nil, err
	}
	return maintenance, nil
}

// SetInvoice records the stored invoice path and returns the previous
// one so the caller can clean it up.
func (s *MaintenanceService) SetInvoice(ctx context.Context, id uint, relPath string) (*model.Maintenance, string, error) {
	maintenance, err := s.maintenances.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if maintenance == nil {
		return nil, "", ErrNotFound
	}

	var previous string
	if maintenance.InvoiceURL != nil {
		previous = *maintenance.InvoiceURL
	}
	maintenance.InvoiceURL = &relPath

	if err := s.maintenances.Update(ctx, maintenance); err != nil {
		return nil, "", err
	}
	return maintenance, previous, nil
}

func (s *MaintenanceService) GetByID(ctx context.Context, id uint) (*model.Maintenance, error) {
	maintenance, err := s.maintenances.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if maintenance == nil {
		return nil, ErrNotFound
	}
	return maintenance, nil
}

func (s *MaintenanceService) List(ctx context.Context) ([]model.Maintenance, error) {
	return s.maintenances.List(ctx)
}

func (s *MaintenanceService) ListByVehicle(ctx context.Context, vehicleID uint) ([]model.Maintenance, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}
	return s.maintenances.ListByVehicleID(ctx, vehicleID)
}

// Delete removes a maintenance together with its derived notifications.
func (s *MaintenanceService) Delete(ctx context.Context, id uint) error {
	maintenance, err := s.maintenances.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if maintenance == nil {
		return ErrNotFound
	}
	return s.maintenances.DeleteWithNotifications(ctx, id)
}

func (s *MaintenanceService) ListUnreadNotifications(ctx context.Context) ([]model.Notification, error) {
	return s.notifications.ListUnread(ctx)
}

func (s *MaintenanceService) MarkNotificationRead(ctx context.Context, id uint) error {
	notification, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotFound
	}
	return s.notifications.MarkRead(ctx, id)
}
