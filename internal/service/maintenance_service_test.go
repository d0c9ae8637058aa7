package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"fleet-service/internal/model"
)

type fakeVehicleStore struct {
	vehicles []model.Vehicle
}

func (f *fakeVehicleStore) List(ctx context.Context) ([]model.Vehicle, error) {
	return f.vehicles, nil
}

func (f *fakeVehicleStore) GetByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	for i := range f.vehicles {
		if f.vehicles[i].ID == id {
			return &f.vehicles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeVehicleStore) Update(ctx context.Context, vehicle *model.Vehicle) error {
	for i := range f.vehicles {
		if f.vehicles[i].ID == vehicle.ID {
			f.vehicles[i] = *vehicle
			return nil
		}
	}
	return nil
}

type fakeMaintenanceStore struct {
	maintenances []model.Maintenance
	nextID       uint
}

func (f *fakeMaintenanceStore) Create(ctx context.Context, m *model.Maintenance) error {
	f.nextID++
	m.ID = f.nextID
	f.maintenances = append(f.maintenances, *m)
	return nil
}

func (f *fakeMaintenanceStore) GetByID(ctx context.Context, id uint) (*model.Maintenance, error) {
	for i := range f.maintenances {
		if f.maintenances[i].ID == id {
			return &f.maintenances[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMaintenanceStore) List(ctx context.Context) ([]model.Maintenance, error) {
	return f.maintenances, nil
}

func (f *fakeMaintenanceStore) ListByVehicleID(ctx context.Context, vehicleID uint) ([]model.Maintenance, error) {
	var out []model.Maintenance
	for _, m := range f.maintenances {
		if m.VehicleID == vehicleID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceStore) LatestByVehicleID(ctx context.Context, vehicleID uint) (*model.Maintenance, error) {
	var latest *model.Maintenance
	for i := range f.maintenances {
		m := &f.maintenances[i]
		if m.VehicleID != vehicleID {
			continue
		}
		if latest == nil || m.ServiceDate.After(latest.ServiceDate) {
			latest = m
		}
	}
	return latest, nil
}

func (f *fakeMaintenanceStore) Update(ctx context.Context, m *model.Maintenance) error {
	for i := range f.maintenances {
		if f.maintenances[i].ID == m.ID {
			f.maintenances[i] = *m
			return nil
		}
	}
	return nil
}

func (f *fakeMaintenanceStore) DeleteWithNotifications(ctx context.Context, id uint) error {
	out := f.maintenances[:0]
	for _, m := range f.maintenances {
		if m.ID != id {
			out = append(out, m)
		}
	}
	f.maintenances = out
	return nil
}

type fakeNotificationStore struct {
	notifications []model.Notification
	nextID        uint
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	f.nextID++
	n.ID = f.nextID
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationStore) GetByID(ctx context.Context, id uint) (*model.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			return &f.notifications[i], nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationStore) ListUnread(ctx context.Context) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range f.notifications {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) HasUnread(ctx context.Context, vehicleID, maintenanceID uint, severity model.Severity) (bool, error) {
	for _, n := range f.notifications {
		if n.VehicleID == vehicleID && n.MaintenanceID == maintenanceID && n.Severity == severity && !n.Read {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id uint) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].Read = true
			return nil
		}
	}
	return nil
}

func TestEvaluateMaintenance(t *testing.T) {
	tests := []struct {
		name         string
		odometer     float64
		nextDue      float64
		wantEvent    bool
		wantSeverity model.Severity
	}{
		{"urgent when within 500", 14800, 15000, true, model.SeverityRed},
		{"urgent at exactly 500 remaining", 14500, 15000, true, model.SeverityRed},
		{"warning when within 1000", 14200, 15000, true, model.SeverityYellow},
		{"warning at exactly 1000 remaining", 14000, 15000, true, model.SeverityYellow},
		{"no event beyond 1000", 13999, 15000, false, ""},
		{"urgent when overdue", 15200, 15000, true, model.SeverityRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, ok := EvaluateMaintenance("AB-123", tt.odometer, tt.nextDue)
			if ok != tt.wantEvent {
				t.Fatalf("expected event=%v, got %v", tt.wantEvent, ok)
			}
			if !ok {
				return
			}
			if event.Severity != tt.wantSeverity {
				t.Errorf("expected severity %s, got %s", tt.wantSeverity, event.Severity)
			}
			if !strings.Contains(event.Message, "AB-123") {
				t.Errorf("expected message to contain plate, got %q", event.Message)
			}
		})
	}
}

func newMaintenanceFixture(odometer, nextDue float64) (*MaintenanceService, *fakeNotificationStore) {
	vehicles := &fakeVehicleStore{vehicles: []model.Vehicle{
		{ID: 1, PlateNumber: "AB-123", Odometer: odometer},
	}}
	maintenances := &fakeMaintenanceStore{maintenances: []model.Maintenance{
		{ID: 7, VehicleID: 1, ServiceDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Odometer: odometer - 5000, NextDueOdometer: nextDue},
	}, nextID: 7}
	notifications := &fakeNotificationStore{}
	return NewMaintenanceService(vehicles, maintenances, notifications), notifications
}

func TestRefreshNotificationsEmitsRed(t *testing.T) {
	svc, notifications := newMaintenanceFixture(14800, 15000)

	if err := svc.RefreshNotifications(context.Background()); err != nil {
		t.Fatalf("RefreshNotifications: %v", err)
	}

	if len(notifications.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications.notifications))
	}
	got := notifications.notifications[0]
	if got.Severity != model.SeverityRed {
		t.Errorf("expected red severity, got %s", got.Severity)
	}
	if got.VehicleID != 1 || got.MaintenanceID != 7 {
		t.Errorf("unexpected notification target: vehicle=%d maintenance=%d", got.VehicleID, got.MaintenanceID)
	}
	if !strings.Contains(got.Message, "AB-123") {
		t.Errorf("expected message to contain plate, got %q", got.Message)
	}
}

func TestRefreshNotificationsIsIdempotent(t *testing.T) {
	svc, notifications := newMaintenanceFixture(14800, 15000)

	for i := 0; i < 2; i++ {
		if err := svc.RefreshNotifications(context.Background()); err != nil {
			t.Fatalf("RefreshNotifications run %d: %v", i+1, err)
		}
	}

	if len(notifications.notifications) != 1 {
		t.Fatalf("expected a single notification after two runs, got %d", len(notifications.notifications))
	}
}

func TestRefreshNotificationsReemitsAfterRead(t *testing.T) {
	svc, notifications := newMaintenanceFixture(14800, 15000)

	if err := svc.RefreshNotifications(context.Background()); err != nil {
		t.Fatalf("RefreshNotifications: %v", err)
	}
	if err := notifications.MarkRead(context.Background(), notifications.notifications[0].ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if err := svc.RefreshNotifications(context.Background()); err != nil {
		t.Fatalf("RefreshNotifications: %v", err)
	}

	// Only the unread row suppresses a duplicate.
	if len(notifications.notifications) != 2 {
		t.Fatalf("expected a fresh notification after the first was read, got %d rows", len(notifications.notifications))
	}
}

func TestRefreshNotificationsSkipsVehicleWithoutHistory(t *testing.T) {
	vehicles := &fakeVehicleStore{vehicles: []model.Vehicle{{ID: 1, PlateNumber: "CD-456", Odometer: 90000}}}
	notifications := &fakeNotificationStore{}
	svc := NewMaintenanceService(vehicles, &fakeMaintenanceStore{}, notifications)

	if err := svc.RefreshNotifications(context.Background()); err != nil {
		t.Fatalf("RefreshNotifications: %v", err)
	}
	if len(notifications.notifications) != 0 {
		t.Fatalf("expected no notifications without maintenance history, got %d", len(notifications.notifications))
	}
}

func TestCreateMaintenanceBumpsVehicleOdometer(t *testing.T) {
	vehicles := &fakeVehicleStore{vehicles: []model.Vehicle{{ID: 1, PlateNumber: "AB-123", Odometer: 10000}}}
	maintenances := &fakeMaintenanceStore{}
	svc := NewMaintenanceService(vehicles, maintenances, &fakeNotificationStore{})

	principal := model.Principal{UserID: 3}
	_, err := svc.Create(context.Background(), principal, MaintenanceInput{
		VehicleID:       1,
		ServiceType:     "oil change",
		Cost:            "120.50",
		ServiceDate:     "2024-03-01",
		Odometer:        12000,
		NextDueOdometer: 22000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if vehicles.vehicles[0].Odometer != 12000 {
		t.Errorf("expected vehicle odometer bumped to 12000, got %v", vehicles.vehicles[0].Odometer)
	}
}

func TestCreateMaintenanceRejectsNextDueNotAhead(t *testing.T) {
	vehicles := &fakeVehicleStore{vehicles: []model.Vehicle{{ID: 1, PlateNumber: "AB-123", Odometer: 10000}}}
	svc := NewMaintenanceService(vehicles, &fakeMaintenanceStore{}, &fakeNotificationStore{})

	_, err := svc.Create(context.Background(), model.Principal{UserID: 1}, MaintenanceInput{
		VehicleID:       1,
		ServiceType:     "oil change",
		Cost:            "100",
		ServiceDate:     "2024-03-01",
		Odometer:        12000,
		NextDueOdometer: 12000,
	})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
