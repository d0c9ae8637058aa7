package model

import "time"

type Severity string

const (
	SeverityYellow Severity = "yellow"
	SeverityRed    Severity = "red"
)

// Notification is derived from maintenance state, never written by users.
// Invariant: at most one unread row per (vehicle, maintenance, severity).
type Notification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	VehicleID     uint      `gorm:"not null;index" json:"vehicle_id"`
	MaintenanceID uint      `gorm:"not null;index" json:"maintenance_id"`
	Message       string    `gorm:"type:varchar(255);not null" json:"message"`
	Severity      Severity  `gorm:"type:varchar(50);not null" json:"severity"`
	Read          bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
