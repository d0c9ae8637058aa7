package repository

import (
	"context"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) ListByTripID(ctx context.Context, tripID uint) ([]model.TripAssignment, error) {
	var assignments []model.TripAssignment
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("assigned_at").
		Find(&assignments).Error
	return assignments, err
}

// AssignmentDetail carries the joined vehicle/driver identity for detail views.
type AssignmentDetail struct {
	AssignmentID    uint   `json:"assignment_id"`
	VehicleID       uint   `json:"vehicle_id"`
	PlateNumber     string `json:"plate_number"`
	VehicleModel    string `json:"vehicle_model"`
	DriverID        uint   `json:"driver_id"`
	DriverFirstName string `json:"driver_first_name"`
	DriverLastName  string `json:"driver_last_name"`
}

func (r *AssignmentRepository) ListDetailsByTripID(ctx context.Context, tripID uint) ([]AssignmentDetail, error) {
	var details []AssignmentDetail
	err := r.db.WithContext(ctx).Table("trip_assignments ta").
		Select(`
			ta.id AS assignment_id,
			v.id AS vehicle_id,
			v.plate_number,
			v.model AS vehicle_model,
			d.id AS driver_id,
			d.first_name AS driver_first_name,
			d.last_name AS driver_last_name
		`).
		Joins("JOIN vehicles v ON v.id = ta.vehicle_id").
		Joins("JOIN drivers d ON d.id = ta.driver_id").
		Where("ta.trip_id = ?", tripID).
		Order("ta.assigned_at").
		Scan(&details).Error
	return details, err
}

func (r *AssignmentRepository) CountByVehicleID(ctx context.Context, vehicleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TripAssignment{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	return count, err
}

func (r *AssignmentRepository) CountByDriverID(ctx context.Context, driverID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TripAssignment{}).
		Where("driver_id = ?", driverID).
		Count(&count).Error
	return count, err
}
