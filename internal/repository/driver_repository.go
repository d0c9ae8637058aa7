package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) Create(ctx context.Context, driver *model.Driver) error {
	return r.db.WithContext(ctx).Create(driver).Error
}

func (r *DriverRepository) GetByID(ctx context.Context, id uint) (*model.Driver, error) {
	var driver model.Driver
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&driver).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) GetByNationalID(ctx context.Context, nationalID string) (*model.Driver, error) {
	if nationalID == "" {
		return nil, nil
	}
	var driver model.Driver
	err := r.db.WithContext(ctx).Where("national_id = ?", nationalID).First(&driver).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) List(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	err := r.db.WithContext(ctx).Order("last_name, first_name").Find(&drivers).Error
	return drivers, err
}

func (r *DriverRepository) ListByStatus(ctx context.Context, status model.DriverStatus) ([]model.Driver, error) {
	var drivers []model.Driver
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("last_name, first_name").Find(&drivers).Error
	return drivers, err
}

func (r *DriverRepository) Update(ctx context.Context, driver *model.Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

func (r *DriverRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Driver{}, id).Error
}
