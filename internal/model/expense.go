package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseCategoryFuel        ExpenseCategory = "fuel"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryInsurance   ExpenseCategory = "insurance"
	ExpenseCategorySalaries    ExpenseCategory = "salaries"
	ExpenseCategoryTaxes       ExpenseCategory = "taxes"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryFuel, ExpenseCategoryMaintenance, ExpenseCategoryInsurance,
		ExpenseCategorySalaries, ExpenseCategoryTaxes, ExpenseCategoryOther:
		return true
	}
	return false
}

// Expense is a general company expense, optionally tagged to a vehicle.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Category    ExpenseCategory `gorm:"type:expense_category;not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Description string          `gorm:"type:text" json:"description"`
	VehicleID   *uint           `gorm:"index" json:"vehicle_id"`
	CreatedBy   *uint           `json:"created_by"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Expense) TableName() string {
	return "expenses"
}
