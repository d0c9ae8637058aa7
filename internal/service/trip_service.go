package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

const tripDateLayout = "2006-01-02"

type TripStore interface {
	CreateFull(ctx context.Context, trip *model.Trip, assignments []model.TripAssignment, expenses []model.TripExpense, payment *model.Payment) error
	UpdateFull(ctx context.Context, trip *model.Trip, assignments []model.TripAssignment, expenses []model.TripExpense, payment *model.Payment) error
	DeleteCascade(ctx context.Context, tripID uint) error
	GetByID(ctx context.Context, id uint) (*model.Trip, error)
	Update(ctx context.Context, trip *model.Trip) error
	List(ctx context.Context, filter repository.TripFilter) ([]model.Trip, int64, error)
	FindConflicts(ctx context.Context, date time.Time, vehicleID, driverID uint) ([]model.Trip, error)
	LastCodeWithPrefix(ctx context.Context, prefix string) (string, error)
	ListCalendarRows(ctx context.Context) ([]repository.CalendarRow, error)
	ListExpensesByTripID(ctx context.Context, tripID uint) ([]model.TripExpense, error)
}

type TripAssignmentStore interface {
	ListDetailsByTripID(ctx context.Context, tripID uint) ([]repository.AssignmentDetail, error)
}

type TripPaymentStore interface {
	ListByTripID(ctx context.Context, tripID uint) ([]model.Payment, error)
}

type TripService struct {
	trips       TripStore
	assignments TripAssignmentStore
	payments    TripPaymentStore
}

func NewTripService(trips TripStore, assignments TripAssignmentStore, payments TripPaymentStore) *TripService {
	return &TripService{
		trips:       trips,
		assignments: assignments,
		payments:    payments,
	}
}

type AssignmentInput struct {
	VehicleID uint `json:"vehicle_id"`
	DriverID  uint `json:"driver_id"`
}

type TripExpenseInput struct {
	Name        string `json:"name"`
	UnitPrice   string `json:"unit_price"`
	PersonCount int    `json:"person_count"`
}

type TripPaymentInput struct {
	Mode           string  `json:"mode"`
	TotalAmount    string  `json:"total_amount"`
	PaidAmount     string  `json:"paid_amount"`
	Reference      string  `json:"reference"`
	Bank           string  `json:"bank"`
	ChequeNumber   string  `json:"cheque_number"`
	ChequeImageURL *string `json:"cheque_image_url"`
	Notes          string  `json:"notes"`
}

type TripInput struct {
	Type           string
	Name           string
	RecurringDays  []string
	DeparturePoint string
	ArrivalPoint   string
	Distance       *float64
	DepartureDate  string
	DepartureTime  string
	ArrivalDate    string
	ArrivalTime    string
	DayCount       *int
	PricingMode    string // "buy_sell" or "commission"
	BuyPrice       string
	SellPrice      string
	Commission     string
	Adults         int
	Children       int
	Infants        int
	PaymentStatus  string
	ClientName     string
	ClientPhone    string
	ClientEmail    string
	Comments       string
	Assignments    []AssignmentInput
	Expenses       []TripExpenseInput
	Payment        *TripPaymentInput
}

func parseOptionalDecimal(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, ErrInvalidInput
	}
	return &value, nil
}

func parseClock(raw string) (*string, error) {
	if raw == "" {
		return nil, nil
	}
	if _, err := time.Parse("15:04", raw); err != nil {
		return nil, ErrInvalidInput
	}
	return &raw, nil
}

func (s *TripService) buildTrip(input TripInput) (*model.Trip, error) {
	tripType := model.TripType(input.Type)
	if !tripType.Valid() {
		return nil, ErrInvalidInput
	}

	departureDate, err := time.Parse(tripDateLayout, input.DepartureDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	departureTime, err := parseClock(input.DepartureTime)
	if err != nil {
		return nil, err
	}
	arrivalTime, err := parseClock(input.ArrivalTime)
	if err != nil {
		return nil, err
	}

	var arrivalDate *time.Time
	if input.ArrivalDate != "" {
		parsed, err := time.Parse(tripDateLayout, input.ArrivalDate)
		if err != nil {
			return nil, ErrInvalidInput
		}
		arrivalDate = &parsed
	}

	paymentStatus := model.TripPaymentStatus(input.PaymentStatus)
	if input.PaymentStatus == "" {
		paymentStatus = model.TripPaymentUnpaid
	}
	if !paymentStatus.Valid() {
		return nil, ErrInvalidInput
	}

	trip := &model.Trip{
		Type:           tripType,
		Name:           input.Name,
		IsRecurring:    len(input.RecurringDays) > 0,
		RecurringDays:  strings.Join(input.RecurringDays, ","),
		DeparturePoint: input.DeparturePoint,
		ArrivalPoint:   input.ArrivalPoint,
		Distance:       input.Distance,
		DepartureDate:  departureDate,
		DepartureTime:  departureTime,
		ArrivalDate:    arrivalDate,
		ArrivalTime:    arrivalTime,
		DayCount:       input.DayCount,
		Adults:         input.Adults,
		Children:       input.Children,
		Infants:        input.Infants,
		PaymentStatus:  paymentStatus,
		Status:         model.TripStatusPlanned,
		ClientName:     input.ClientName,
		ClientPhone:    input.ClientPhone,
		ClientEmail:    input.ClientEmail,
		Comments:       input.Comments,
	}

	// Buy/sell and commission pricing are mutually exclusive.
	switch input.PricingMode {
	case "commission":
		commission, err := parseOptionalDecimal(input.Commission)
		if err != nil {
			return nil, err
		}
		trip.Commission = commission
		trip.IsCommission = true
	case "buy_sell", "":
		buyPrice, err := parseOptionalDecimal(input.BuyPrice)
		if err != nil {
			return nil, err
		}
		sellPrice, err := parseOptionalDecimal(input.SellPrice)
		if err != nil {
			return nil, err
		}
		trip.BuyPrice = buyPrice
		trip.SellPrice = sellPrice
		trip.IsCommission = false
	default:
		return nil, ErrInvalidInput
	}

	return trip, nil
}

func buildTripExpenses(inputs []TripExpenseInput) ([]model.TripExpense, error) {
	var expenses []model.TripExpense
	for _, in := range inputs {
		if in.Name == "" || in.PersonCount <= 0 {
			return nil, ErrInvalidInput
		}
		unitPrice, err := decimal.NewFromString(in.UnitPrice)
		if err != nil {
			return nil, ErrInvalidInput
		}
		expenses = append(expenses, model.TripExpense{
			Name:        in.Name,
			UnitPrice:   unitPrice,
			PersonCount: in.PersonCount,
			Total:       unitPrice.Mul(decimal.NewFromInt(int64(in.PersonCount))),
		})
	}
	return expenses, nil
}

func buildTripPayment(input *TripPaymentInput, receivedBy uint) (*model.Payment, error) {
	if input == nil {
		return nil, nil
	}
	mode := model.PaymentMode(input.Mode)
	if !mode.Valid() {
		return nil, ErrInvalidInput
	}
	if mode.RequiresBankDetails() && (input.Bank == "" || input.ChequeNumber == "") {
		return nil, ErrInvalidInput
	}
	total, err := decimal.NewFromString(input.TotalAmount)
	if err != nil {
		return nil, ErrInvalidInput
	}
	paid := decimal.Zero
	if input.PaidAmount != "" {
		paid, err = decimal.NewFromString(input.PaidAmount)
		if err != nil {
			return nil, ErrInvalidInput
		}
	}
	return &model.Payment{
		TotalAmount:    total,
		PaidAmount:     paid,
		Mode:           mode,
		Reference:      input.Reference,
		Bank:           input.Bank,
		ChequeNumber:   input.ChequeNumber,
		ChequeImageURL: input.ChequeImageURL,
		PaidAt:         time.Now(),
		ReceivedBy:     &receivedBy,
		Notes:          input.Notes,
	}, nil
}

// generateCode builds the next voyage code for a departure date:
// V<yymmdd> plus a two-digit per-day counter.
func (s *TripService) generateCode(ctx context.Context, departureDate time.Time) (string, error) {
	prefix := "V" + departureDate.Format("060102")
	last, err := s.trips.LastCodeWithPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	if last == "" {
		return prefix + "01", nil
	}
	lastNum, err := strconv.Atoi(last[len(prefix):])
	if err != nil {
		return "", fmt.Errorf("malformed voyage code %q: %w", last, err)
	}
	// The counter is two digits wide; past 99 a wider code would sort
	// below V<yymmdd>99 and the next lookup would reissue a taken code.
	if lastNum >= 99 {
		return "", fmt.Errorf("voyage codes exhausted for %s", prefix)
	}
	return fmt.Sprintf("%s%02d", prefix, lastNum+1), nil
}

func (s *TripService) Create(ctx context.Context, principal model.Principal, input TripInput) (*model.Trip, error) {
	trip, err := s.buildTrip(input)
	if err != nil {
		return nil, err
	}
	trip.CreatedBy = &principal.UserID

	code, err := s.generateCode(ctx, trip.DepartureDate)
	if err != nil {
		return nil, err
	}
	trip.Code = code

	var assignments []model.TripAssignment
	for _, a := range input.Assignments {
		if a.VehicleID == 0 || a.DriverID == 0 {
			return nil, ErrInvalidInput
		}
		assignments = append(assignments, model.TripAssignment{
			VehicleID:  a.VehicleID,
			DriverID:   a.DriverID,
			AssignedAt: time.Now(),
		})
	}

	expenses, err := buildTripExpenses(input.Expenses)
	if err != nil {
		return nil, err
	}

	payment, err := buildTripPayment(input.Payment, principal.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.trips.CreateFull(ctx, trip, assignments, expenses, payment); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *TripService) Update(ctx context.Context, principal model.Principal, id uint, input TripInput) (*model.Trip, error) {
	existing, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	updated, err := s.buildTrip(input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Code = existing.Code
	updated.Status = existing.Status
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt

	var assignments []model.TripAssignment
	for _, a := range input.Assignments {
		if a.VehicleID == 0 || a.DriverID == 0 {
			return nil, ErrInvalidInput
		}
		assignments = append(assignments, model.TripAssignment{
			VehicleID:  a.VehicleID,
			DriverID:   a.DriverID,
			AssignedAt: time.Now(),
		})
	}

	expenses, err := buildTripExpenses(input.Expenses)
	if err != nil {
		return nil, err
	}

	payment, err := buildTripPayment(input.Payment, principal.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.trips.UpdateFull(ctx, updated, assignments, expenses, payment); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TripService) Delete(ctx context.Context, id uint) error {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if trip == nil {
		return ErrNotFound
	}
	return s.trips.DeleteCascade(ctx, id)
}

func (s *TripService) List(ctx context.Context, filter repository.TripFilter) ([]model.Trip, int64, error) {
	return s.trips.List(ctx, filter)
}

// TripDetails is the full aggregate behind the trip detail view.
type TripDetails struct {
	Trip        model.Trip                    `json:"trip"`
	Assignments []repository.AssignmentDetail `json:"assignments"`
	Expenses    []model.TripExpense           `json:"expenses"`
	Payments    []model.Payment               `json:"payments"`
}

func (s *TripService) GetDetails(ctx context.Context, id uint) (*TripDetails, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrNotFound
	}

	assignments, err := s.assignments.ListDetailsByTripID(ctx, id)
	if err != nil {
		return nil, err
	}
	expenses, err := s.trips.ListExpensesByTripID(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByTripID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TripDetails{
		Trip:        *trip,
		Assignments: assignments,
		Expenses:    expenses,
		Payments:    payments,
	}, nil
}

func (s *TripService) ChangeStatus(ctx context.Context, id uint, status string) (*model.Trip, error) {
	newStatus := model.TripStatus(status)
	if !newStatus.Valid() {
		return nil, ErrInvalidInput
	}

	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrNotFound
	}

	trip.Status = newStatus
	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}
