package model

import "github.com/shopspring/decimal"

// TripExpense is an extra per-trip line item (guide fees, meals, tolls...).
type TripExpense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	TripID      uint            `gorm:"not null;index" json:"trip_id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	PersonCount int             `gorm:"not null" json:"person_count"`
	Total       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
}

func (TripExpense) TableName() string {
	return "trip_expenses"
}
