package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uint) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepository) ListUnread(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("read = ?", false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// HasUnread reports whether an unread notification already exists for the
// (vehicle, maintenance, severity) triple.
func (r *NotificationRepository) HasUnread(ctx context.Context, vehicleID, maintenanceID uint, severity model.Severity) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("vehicle_id = ? AND maintenance_id = ? AND severity = ? AND read = ?",
			vehicleID, maintenanceID, severity, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}
