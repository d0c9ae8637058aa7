package service

import (
	"context"
	"testing"

	"fleet-service/internal/model"
)

type fakeVehicleCrudStore struct {
	vehicles map[uint]*model.Vehicle
	nextID   uint
}

func newFakeVehicleCrudStore() *fakeVehicleCrudStore {
	return &fakeVehicleCrudStore{vehicles: map[uint]*model.Vehicle{}, nextID: 1}
}

func (f *fakeVehicleCrudStore) Create(_ context.Context, vehicle *model.Vehicle) error {
	vehicle.ID = f.nextID
	f.nextID++
	copied := *vehicle
	f.vehicles[vehicle.ID] = &copied
	return nil
}

func (f *fakeVehicleCrudStore) GetByID(_ context.Context, id uint) (*model.Vehicle, error) {
	vehicle, ok := f.vehicles[id]
	if !ok {
		return nil, nil
	}
	copied := *vehicle
	return &copied, nil
}

func (f *fakeVehicleCrudStore) GetByPlate(_ context.Context, plate string) (*model.Vehicle, error) {
	for _, vehicle := range f.vehicles {
		if vehicle.PlateNumber == plate {
			copied := *vehicle
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeVehicleCrudStore) List(_ context.Context) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, vehicle := range f.vehicles {
		out = append(out, *vehicle)
	}
	return out, nil
}

func (f *fakeVehicleCrudStore) ListByStatus(_ context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, vehicle := range f.vehicles {
		if vehicle.Status == status {
			out = append(out, *vehicle)
		}
	}
	return out, nil
}

func (f *fakeVehicleCrudStore) Update(_ context.Context, vehicle *model.Vehicle) error {
	copied := *vehicle
	f.vehicles[vehicle.ID] = &copied
	return nil
}

func (f *fakeVehicleCrudStore) Delete(_ context.Context, id uint) error {
	delete(f.vehicles, id)
	return nil
}

type fakeAssignmentCounter struct {
	byVehicle map[uint]int64
	byDriver  map[uint]int64
}

func (f fakeAssignmentCounter) CountByVehicleID(_ context.Context, vehicleID uint) (int64, error) {
	return f.byVehicle[vehicleID], nil
}

func (f fakeAssignmentCounter) CountByDriverID(_ context.Context, driverID uint) (int64, error) {
	return f.byDriver[driverID], nil
}

func validVehicleInput() VehicleInput {
	return VehicleInput{
		PlateNumber: "AB-123",
		Make:        "Toyota",
		Model:       "Coaster",
		Seats:       28,
		Fuel:        "diesel",
	}
}

func TestCreateVehicleDuplicatePlate(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleCrudStore(), fakeAssignmentCounter{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, validVehicleInput()); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	if _, err := svc.Create(ctx, validVehicleInput()); err != ErrConflict {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestCreateVehicleRejectsUnknownFuel(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleCrudStore(), fakeAssignmentCounter{})

	input := validVehicleInput()
	input.Fuel = "kerosene"
	if _, err := svc.Create(context.Background(), input); err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestDeleteVehicleGuardedByAssignments(t *testing.T) {
	store := newFakeVehicleCrudStore()
	counter := fakeAssignmentCounter{byVehicle: map[uint]int64{}}
	svc := NewVehicleService(store, counter)
	ctx := context.Background()

	vehicle, err := svc.Create(ctx, validVehicleInput())
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	counter.byVehicle[vehicle.ID] = 2
	if err := svc.Delete(ctx, vehicle.ID); err != ErrInUse {
		t.Fatalf("err = %v, want ErrInUse", err)
	}
	if got, _ := store.GetByID(ctx, vehicle.ID); got == nil {
		t.Fatal("guarded delete must leave the vehicle in place")
	}

	counter.byVehicle[vehicle.ID] = 0
	if err := svc.Delete(ctx, vehicle.ID); err != nil {
		t.Fatalf("delete unreferenced vehicle: %v", err)
	}
	if got, _ := store.GetByID(ctx, vehicle.ID); got != nil {
		t.Fatal("vehicle must be gone after delete")
	}
}

func TestListVehiclesByStatus(t *testing.T) {
	store := newFakeVehicleCrudStore()
	svc := NewVehicleService(store, fakeAssignmentCounter{})
	ctx := context.Background()

	running := validVehicleInput()
	if _, err := svc.Create(ctx, running); err != nil {
		t.Fatalf("create running vehicle: %v", err)
	}
	broken := validVehicleInput()
	broken.PlateNumber = "CD-456"
	broken.Status = "broken"
	if _, err := svc.Create(ctx, broken); err != nil {
		t.Fatalf("create broken vehicle: %v", err)
	}

	vehicles, err := svc.List(ctx, "broken")
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].PlateNumber != "CD-456" {
		t.Errorf("unexpected filtered result: %+v", vehicles)
	}

	if _, err := svc.List(ctx, "scrapped"); err != ErrInvalidInput {
		t.Fatalf("bad status err = %v, want ErrInvalidInput", err)
	}
}
