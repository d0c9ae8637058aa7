package model

import "time"

// TripAssignment binds one vehicle and one driver to a trip. A trip may carry
// several assignments (multi-vehicle jobs).
type TripAssignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TripID     uint      `gorm:"not null;index" json:"trip_id"`
	VehicleID  uint      `gorm:"not null;index" json:"vehicle_id"`
	DriverID   uint      `gorm:"not null;index" json:"driver_id"`
	AssignedAt time.Time `gorm:"not null;default:now()" json:"assigned_at"`
}

func (TripAssignment) TableName() string {
	return "trip_assignments"
}
