package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMode string

const (
	PaymentModeCash    PaymentMode = "cash"
	PaymentModeDeposit PaymentMode = "deposit"
	PaymentModeInvoice PaymentMode = "invoice"
	PaymentModeCheque  PaymentMode = "cheque"
	PaymentModeUnpaid  PaymentMode = "unpaid"
	PaymentModeFree    PaymentMode = "free"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeDeposit, PaymentModeInvoice, PaymentModeCheque, PaymentModeUnpaid, PaymentModeFree:
		return true
	}
	return false
}

// RequiresBankDetails reports whether the mode needs bank and cheque fields.
func (m PaymentMode) RequiresBankDetails() bool {
	return m == PaymentModeCheque
}

type Payment struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	TripID         uint            `gorm:"not null;index" json:"trip_id"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	PaidAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"paid_amount"`
	Mode           PaymentMode     `gorm:"type:payment_mode;not null" json:"mode"`
	Reference      string          `gorm:"type:varchar(100)" json:"reference"`
	Bank           string          `gorm:"type:varchar(100)" json:"bank"`
	ChequeNumber   string          `gorm:"type:varchar(100)" json:"cheque_number"`
	ChequeImageURL *string         `gorm:"type:varchar(255)" json:"cheque_image_url"`
	PaidAt         time.Time       `gorm:"not null;default:now();index" json:"paid_at"`
	ReceivedBy     *uint           `json:"received_by"`
	Notes          string          `gorm:"type:text" json:"notes"`
}

func (Payment) TableName() string {
	return "payments"
}
