package model

import "time"

type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "active"
	DriverStatusOnLeave  DriverStatus = "on_leave"
	DriverStatusInactive DriverStatus = "inactive"
)

func (s DriverStatus) Valid() bool {
	switch s {
	case DriverStatusActive, DriverStatusOnLeave, DriverStatusInactive:
		return true
	}
	return false
}

type Driver struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	FirstName        string       `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName         string       `gorm:"type:varchar(100);not null" json:"last_name"`
	NationalID       string       `gorm:"type:varchar(20);uniqueIndex;not null" json:"national_id"`
	BirthDate        time.Time    `gorm:"type:date;not null" json:"birth_date"`
	Sex              string       `gorm:"type:varchar(1);not null" json:"sex"`
	Phone            string       `gorm:"type:varchar(20);not null" json:"phone"`
	EmergencyPhone   string       `gorm:"type:varchar(20)" json:"emergency_phone"`
	Address          string       `gorm:"type:text;not null" json:"address"`
	Email            string       `gorm:"type:varchar(100)" json:"email"`
	LicenseNumber    string       `gorm:"type:varchar(50);not null" json:"license_number"`
	LicenseExpiresAt time.Time    `gorm:"type:date;not null" json:"license_expires_at"`
	HiredAt          time.Time    `gorm:"type:date;not null" json:"hired_at"`
	PhotoURL         *string      `gorm:"type:varchar(255)" json:"photo_url"`
	Status           DriverStatus `gorm:"type:driver_status;not null;default:active" json:"status"`
	Notes            string       `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}
