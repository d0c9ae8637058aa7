package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TripType string

const (
	TripTypeTransfer          TripType = "transfer"
	TripTypeCorporateTransfer TripType = "corporate_transfer"
	TripTypeExcursion         TripType = "excursion"
	TripTypeEvent             TripType = "event"
	TripTypeStandby           TripType = "standby"
	TripTypeOther             TripType = "other"
)

func (t TripType) Valid() bool {
	switch t {
	case TripTypeTransfer, TripTypeCorporateTransfer, TripTypeExcursion, TripTypeEvent, TripTypeStandby, TripTypeOther:
		return true
	}
	return false
}

type TripStatus string

const (
	TripStatusPlanned    TripStatus = "planned"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusDone       TripStatus = "done"
	TripStatusCancelled  TripStatus = "cancelled"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusPlanned, TripStatusInProgress, TripStatusDone, TripStatusCancelled:
		return true
	}
	return false
}

type TripPaymentStatus string

const (
	TripPaymentUnpaid   TripPaymentStatus = "unpaid"
	TripPaymentDeposit  TripPaymentStatus = "deposit"
	TripPaymentPaid     TripPaymentStatus = "paid"
	TripPaymentInvoiced TripPaymentStatus = "invoiced"
	TripPaymentFree     TripPaymentStatus = "free"
)

func (s TripPaymentStatus) Valid() bool {
	switch s {
	case TripPaymentUnpaid, TripPaymentDeposit, TripPaymentPaid, TripPaymentInvoiced, TripPaymentFree:
		return true
	}
	return false
}

// Trip is a scheduled transport job (voyage). Pricing is either a buy/sell pair
// or a commission, never both: IsCommission selects which set of columns applies.
type Trip struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Code           string            `gorm:"type:varchar(12);uniqueIndex;not null" json:"code"`
	Type           TripType          `gorm:"type:trip_type;not null" json:"type"`
	Name           string            `gorm:"type:varchar(255)" json:"name"`
	IsRecurring    bool              `gorm:"not null;default:false" json:"is_recurring"`
	RecurringDays  string            `gorm:"type:varchar(100)" json:"recurring_days"`
	DeparturePoint string            `gorm:"type:varchar(255)" json:"departure_point"`
	ArrivalPoint   string            `gorm:"type:varchar(255)" json:"arrival_point"`
	Distance       *float64          `json:"distance"`
	DepartureDate  time.Time         `gorm:"type:date;not null;index" json:"departure_date"`
	DepartureTime  *string           `gorm:"type:varchar(5)" json:"departure_time"`
	ArrivalDate    *time.Time        `gorm:"type:date" json:"arrival_date"`
	ArrivalTime    *string           `gorm:"type:varchar(5)" json:"arrival_time"`
	DayCount       *int              `json:"day_count"`
	BuyPrice       *decimal.Decimal  `gorm:"type:numeric(10,2)" json:"buy_price"`
	SellPrice      *decimal.Decimal  `gorm:"type:numeric(10,2)" json:"sell_price"`
	Commission     *decimal.Decimal  `gorm:"type:numeric(10,2)" json:"commission"`
	IsCommission   bool              `gorm:"not null;default:false" json:"is_commission"`
	Adults         int               `gorm:"not null;default:0" json:"adults"`
	Children       int               `gorm:"not null;default:0" json:"children"`
	Infants        int               `gorm:"not null;default:0" json:"infants"`
	PaymentStatus  TripPaymentStatus `gorm:"type:trip_payment_status;not null;default:unpaid" json:"payment_status"`
	Status         TripStatus        `gorm:"type:trip_status;not null;default:planned" json:"status"`
	ClientName     string            `gorm:"type:varchar(100)" json:"client_name"`
	ClientPhone    string            `gorm:"type:varchar(20)" json:"client_phone"`
	ClientEmail    string            `gorm:"type:varchar(100)" json:"client_email"`
	Comments       string            `gorm:"type:text" json:"comments"`
	CreatedBy      *uint             `gorm:"index" json:"created_by"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trip) TableName() string {
	return "trips"
}
