package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type fakeTripStore struct {
	trips       map[uint]*model.Trip
	assignments map[uint][]model.TripAssignment
	expenses    map[uint][]model.TripExpense
	payments    map[uint][]model.Payment
	calendar    []repository.CalendarRow
	nextID      uint
}

func newFakeTripStore() *fakeTripStore {
	return &fakeTripStore{
		trips:       map[uint]*model.Trip{},
		assignments: map[uint][]model.TripAssignment{},
		expenses:    map[uint][]model.TripExpense{},
		payments:    map[uint][]model.Payment{},
		nextID:      1,
	}
}

func (f *fakeTripStore) CreateFull(_ context.Context, trip *model.Trip, assignments []model.TripAssignment, expenses []model.TripExpense, payment *model.Payment) error {
	trip.ID = f.nextID
	f.nextID++
	f.trips[trip.ID] = trip
	f.assignments[trip.ID] = assignments
	f.expenses[trip.ID] = expenses
	if payment != nil {
		payment.TripID = trip.ID
		f.payments[trip.ID] = append(f.payments[trip.ID], *payment)
	}
	return nil
}

func (f *fakeTripStore) UpdateFull(_ context.Context, trip *model.Trip, assignments []model.TripAssignment, expenses []model.TripExpense, payment *model.Payment) error {
	f.trips[trip.ID] = trip
	f.assignments[trip.ID] = assignments
	f.expenses[trip.ID] = expenses
	if payment != nil {
		payment.TripID = trip.ID
		f.payments[trip.ID] = append(f.payments[trip.ID], *payment)
	}
	return nil
}

func (f *fakeTripStore) DeleteCascade(_ context.Context, tripID uint) error {
	delete(f.trips, tripID)
	delete(f.assignments, tripID)
	delete(f.expenses, tripID)
	delete(f.payments, tripID)
	return nil
}

func (f *fakeTripStore) GetByID(_ context.Context, id uint) (*model.Trip, error) {
	return f.trips[id], nil
}

func (f *fakeTripStore) Update(_ context.Context, trip *model.Trip) error {
	f.trips[trip.ID] = trip
	return nil
}

func (f *fakeTripStore) List(_ context.Context, _ repository.TripFilter) ([]model.Trip, int64, error) {
	var out []model.Trip
	for _, trip := range f.trips {
		out = append(out, *trip)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTripStore) FindConflicts(_ context.Context, date time.Time, vehicleID, driverID uint) ([]model.Trip, error) {
	var out []model.Trip
	for id, trip := range f.trips {
		if !trip.DepartureDate.Equal(date) {
			continue
		}
		for _, a := range f.assignments[id] {
			if a.VehicleID == vehicleID || a.DriverID == driverID {
				out = append(out, *trip)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeTripStore) LastCodeWithPrefix(_ context.Context, prefix string) (string, error) {
	var last string
	for _, trip := range f.trips {
		if len(trip.Code) >= len(prefix) && trip.Code[:len(prefix)] == prefix && trip.Code > last {
			last = trip.Code
		}
	}
	return last, nil
}

func (f *fakeTripStore) ListCalendarRows(_ context.Context) ([]repository.CalendarRow, error) {
	return f.calendar, nil
}

func (f *fakeTripStore) ListExpensesByTripID(_ context.Context, tripID uint) ([]model.TripExpense, error) {
	return f.expenses[tripID], nil
}

type fakeTripAssignmentStore struct{}

func (fakeTripAssignmentStore) ListDetailsByTripID(_ context.Context, _ uint) ([]repository.AssignmentDetail, error) {
	return nil, nil
}

type fakeTripPaymentStore struct {
	store *fakeTripStore
}

func (f fakeTripPaymentStore) ListByTripID(_ context.Context, tripID uint) ([]model.Payment, error) {
	return f.store.payments[tripID], nil
}

func newTripFixture() (*TripService, *fakeTripStore) {
	store := newFakeTripStore()
	svc := NewTripService(store, fakeTripAssignmentStore{}, fakeTripPaymentStore{store: store})
	return svc, store
}

func testPrincipal() model.Principal {
	return model.Principal{UserID: 1, Username: "admin", Roles: model.RoleSet{model.RoleAdmin: {}}}
}

func TestCreateTripGeneratesSequentialCodes(t *testing.T) {
	svc, _ := newTripFixture()
	ctx := context.Background()

	input := TripInput{
		Type:          "transfer",
		DepartureDate: "2024-06-01",
	}

	first, err := svc.Create(ctx, testPrincipal(), input)
	if err != nil {
		t.Fatalf("create first trip: %v", err)
	}
	if first.Code != "V24060101" {
		t.Errorf("first code = %q, want V24060101", first.Code)
	}

	second, err := svc.Create(ctx, testPrincipal(), input)
	if err != nil {
		t.Fatalf("create second trip: %v", err)
	}
	if second.Code != "V24060102" {
		t.Errorf("second code = %q, want V24060102", second.Code)
	}

	otherDay, err := svc.Create(ctx, testPrincipal(), TripInput{Type: "transfer", DepartureDate: "2024-06-02"})
	if err != nil {
		t.Fatalf("create trip on other day: %v", err)
	}
	if otherDay.Code != "V24060201" {
		t.Errorf("other-day code = %q, want V24060201", otherDay.Code)
	}
}

func TestCreateTripRejectsUnknownType(t *testing.T) {
	svc, _ := newTripFixture()

	_, err := svc.Create(context.Background(), testPrincipal(), TripInput{
		Type:          "cruise",
		DepartureDate: "2024-06-01",
	})
	if err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateTripComputesExpenseTotals(t *testing.T) {
	svc, store := newTripFixture()

	trip, err := svc.Create(context.Background(), testPrincipal(), TripInput{
		Type:          "excursion",
		DepartureDate: "2024-06-01",
		Expenses: []TripExpenseInput{
			{Name: "Museum tickets", UnitPrice: "12.50", PersonCount: 4},
		},
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	expenses := store.expenses[trip.ID]
	if len(expenses) != 1 {
		t.Fatalf("got %d expenses, want 1", len(expenses))
	}
	if got := expenses[0].Total.String(); got != "50" {
		t.Errorf("expense total = %s, want 50", got)
	}
}

func TestCreateTripStopsAtDailyCodeLimit(t *testing.T) {
	svc, store := newTripFixture()

	store.trips[500] = &model.Trip{ID: 500, Code: "V24060199"}
	store.nextID = 501

	_, err := svc.Create(context.Background(), testPrincipal(), TripInput{
		Type:          "transfer",
		DepartureDate: "2024-06-01",
	})
	if err == nil {
		t.Fatal("expected error after 99 trips on one day, got nil")
	}
}

func TestCreateTripStoresPaymentReference(t *testing.T) {
	svc, store := newTripFixture()

	trip, err := svc.Create(context.Background(), testPrincipal(), TripInput{
		Type:          "transfer",
		DepartureDate: "2024-06-01",
		Payment: &TripPaymentInput{
			Mode:        "invoice",
			TotalAmount: "250.00",
			Reference:   "INV-2024-0042",
		},
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	payments := store.payments[trip.ID]
	if len(payments) != 1 {
		t.Fatalf("got %d payments, want 1", len(payments))
	}
	if payments[0].Reference != "INV-2024-0042" {
		t.Errorf("payment reference = %q, want INV-2024-0042", payments[0].Reference)
	}
}

func TestCreateTripChequePaymentNeedsBankDetails(t *testing.T) {
	svc, _ := newTripFixture()

	_, err := svc.Create(context.Background(), testPrincipal(), TripInput{
		Type:          "transfer",
		DepartureDate: "2024-06-01",
		Payment: &TripPaymentInput{
			Mode:        "cheque",
			TotalAmount: "100.00",
		},
	})
	if err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	svc, _ := newTripFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, testPrincipal(), TripInput{
		Type:          "transfer",
		DepartureDate: "2024-06-01",
		Assignments:   []AssignmentInput{{VehicleID: 1, DriverID: 1}},
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	tests := []struct {
		name      string
		date      string
		vehicleID uint
		driverID  uint
		available bool
		conflicts int
	}{
		{"same vehicle same day", "2024-06-01", 1, 2, false, 1},
		{"same driver same day", "2024-06-01", 2, 1, false, 1},
		{"both busy same day", "2024-06-01", 1, 1, false, 1},
		{"free pair same day", "2024-06-01", 2, 2, true, 0},
		{"same pair next day", "2024-06-02", 1, 1, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.CheckAvailability(ctx, tt.date, tt.vehicleID, tt.driverID)
			if err != nil {
				t.Fatalf("check availability: %v", err)
			}
			if result.Available != tt.available {
				t.Errorf("available = %v, want %v", result.Available, tt.available)
			}
			if len(result.Conflicts) != tt.conflicts {
				t.Errorf("got %d conflicts, want %d", len(result.Conflicts), tt.conflicts)
			}
		})
	}
}

func TestChangeStatusRejectsUnknownValue(t *testing.T) {
	svc, _ := newTripFixture()
	ctx := context.Background()

	trip, err := svc.Create(ctx, testPrincipal(), TripInput{Type: "transfer", DepartureDate: "2024-06-01"})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	if _, err := svc.ChangeStatus(ctx, trip.ID, "departed"); err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	updated, err := svc.ChangeStatus(ctx, trip.ID, "in_progress")
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if updated.Status != model.TripStatusInProgress {
		t.Errorf("status = %s, want in_progress", updated.Status)
	}
}

func TestBuildCalendarEvent(t *testing.T) {
	depTime := "08:30"
	plate := "AB-123"
	vehicleModel := "Coaster"
	row := repository.CalendarRow{
		TripID:         3,
		Type:           "excursion",
		Status:         "in_progress",
		DeparturePoint: "Port Louis",
		ArrivalPoint:   "Grand Baie",
		DepartureDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DepartureTime:  &depTime,
		ClientName:     "Jane Doe",
		Adults:         2,
		PlateNumber:    &plate,
		VehicleModel:   &vehicleModel,
	}

	event := buildCalendarEvent(row)
	if event.Start != "2024-06-01T08:30" {
		t.Errorf("start = %q, want 2024-06-01T08:30", event.Start)
	}
	if event.BackgroundColor != "#28a745" {
		t.Errorf("background color = %q, want #28a745", event.BackgroundColor)
	}
	if event.Title != "excursion - Port Louis -> Grand Baie" {
		t.Errorf("title = %q", event.Title)
	}
	want := "<strong>Client:</strong> Jane Doe<br>" +
		"<strong>Vehicle:</strong> AB-123 - Coaster<br>" +
		"<strong>Passengers:</strong> 2"
	if event.Description != want {
		t.Errorf("description = %q, want %q", event.Description, want)
	}
}

func TestCalendarEventJSONUsesBackgroundColorKey(t *testing.T) {
	event := buildCalendarEvent(repository.CalendarRow{
		TripID:        1,
		Type:          "transfer",
		Status:        "planned",
		DepartureDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	raw, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if payload["backgroundColor"] != "#007bff" {
		t.Errorf("backgroundColor = %v, want #007bff", payload["backgroundColor"])
	}
	if _, ok := payload["color"]; ok {
		t.Error("payload must not carry a color key")
	}
}
