package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleStatusRunning       VehicleStatus = "running"
	VehicleStatusBroken        VehicleStatus = "broken"
	VehicleStatusInMaintenance VehicleStatus = "in_maintenance"
	VehicleStatusUnavailable   VehicleStatus = "unavailable"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusRunning, VehicleStatusBroken, VehicleStatusInMaintenance, VehicleStatusUnavailable:
		return true
	}
	return false
}

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric:
		return true
	}
	return false
}

type Vehicle struct {
	ID                  uint             `gorm:"primaryKey" json:"id"`
	PlateNumber         string           `gorm:"type:varchar(20);uniqueIndex;not null" json:"plate_number"`
	Make                string           `gorm:"type:varchar(100);not null" json:"make"`
	Model               string           `gorm:"type:varchar(100);not null" json:"model"`
	Seats               int              `gorm:"not null" json:"seats"`
	Fuel                FuelType         `gorm:"type:fuel_type;not null" json:"fuel"`
	Odometer            float64          `gorm:"not null;default:0" json:"odometer"`
	Color               string           `gorm:"type:varchar(50)" json:"color"`
	Power               *int             `json:"power"`
	PurchasePrice       *decimal.Decimal `gorm:"type:numeric(10,2)" json:"purchase_price"`
	Status              VehicleStatus    `gorm:"type:vehicle_status;not null;default:running" json:"status"`
	ManufactureYear     *int             `json:"manufacture_year"`
	AcquiredAt          *time.Time       `gorm:"type:date" json:"acquired_at"`
	InsuranceExpiresAt  *time.Time       `gorm:"type:date" json:"insurance_expires_at"`
	InspectionExpiresAt *time.Time       `gorm:"type:date" json:"inspection_expires_at"`
	ImageURL            *string          `gorm:"type:varchar(255)" json:"image_url"`
	Notes               string           `gorm:"type:text" json:"notes"`
	CreatedAt           time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
