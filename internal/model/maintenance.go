package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Maintenance records a service event for a vehicle. NextDueOdometer drives
// notification generation and must be greater than Odometer.
type Maintenance struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	VehicleID        uint            `gorm:"not null;index" json:"vehicle_id"`
	ServiceType      string          `gorm:"type:varchar(100);not null" json:"service_type"`
	Cost             decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"cost"`
	ServiceDate      time.Time       `gorm:"type:date;not null;index" json:"service_date"`
	Odometer         float64         `gorm:"not null" json:"odometer"`
	NextDueOdometer  float64         `gorm:"not null" json:"next_due_odometer"`
	Description      string          `gorm:"type:text" json:"description"`
	Provider         string          `gorm:"type:varchar(100)" json:"provider"`
	InvoiceReference string          `gorm:"type:varchar(100)" json:"invoice_reference"`
	InvoiceURL       *string         `gorm:"type:varchar(255)" json:"invoice_url"`
	Parts            []string        `gorm:"serializer:json;type:jsonb" json:"parts"`
	CreatedBy        *uint           `json:"created_by"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Maintenance) TableName() string {
	return "maintenances"
}
