package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) Create(ctx context.Context, maintenance *model.Maintenance) error {
	return r.db.WithContext(ctx).Create(maintenance).Error
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id uint) (*model.Maintenance, error) {
	var maintenance model.Maintenance
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&maintenance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &maintenance, nil
}

func (r *MaintenanceRepository) List(ctx context.Context) ([]model.Maintenance, error) {
	var maintenances []model.Maintenance
	err := r.db.WithContext(ctx).Order("service_date DESC").Find(&maintenances).Error
	return maintenances, err
}

func (r *MaintenanceRepository) ListByVehicleID(ctx context.Context, vehicleID uint) ([]model.Maintenance, error) {
	var maintenances []model.Maintenance
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("service_date DESC").
		Find(&maintenances).Error
	return maintenances, err
}

// LatestByVehicleID returns the most recent maintenance by service date,
// or nil when the vehicle has no history.
func (r *MaintenanceRepository) LatestByVehicleID(ctx context.Context, vehicleID uint) (*model.Maintenance, error) {
	var maintenance model.Maintenance
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("service_date DESC").
		First(&maintenance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &maintenance, nil
}

func (r *MaintenanceRepository) Update(ctx context.Context, maintenance *model.Maintenance) error {
	return r.db.WithContext(ctx).Save(maintenance).Error
}

// DeleteWithNotifications removes a maintenance and its derived notifications
// together, so neither can outlive the other.
func (r *MaintenanceRepository) DeleteWithNotifications(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("maintenance_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Maintenance{}, id).Error
	})
}
