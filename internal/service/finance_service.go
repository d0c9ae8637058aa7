package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type FinanceStore interface {
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	MonthRevenue(ctx context.Context, year, month int) (decimal.Decimal, error)
	TotalExpenses(ctx context.Context) (decimal.Decimal, error)
	MonthExpenses(ctx context.Context, year, month int) (decimal.Decimal, error)
	DailyRevenue(ctx context.Context, year, month int) ([]repository.DayAmount, error)
	DailyExpenses(ctx context.Context, year, month int) ([]repository.DayAmount, error)
	ExpensesByCategory(ctx context.Context, year, month int) ([]repository.CategoryAmount, error)
	VehicleExpensesByCategory(ctx context.Context, vehicleID uint, year, month int) ([]repository.CategoryAmount, error)
	TripCountsByType(ctx context.Context, year, month int) ([]repository.TypeCount, error)
	VehicleRevenue(ctx context.Context, vehicleID uint, year, month int) (decimal.Decimal, error)
	VehicleExpenses(ctx context.Context, vehicleID uint, year, month int) (decimal.Decimal, error)
	VehicleTripCount(ctx context.Context, vehicleID uint, year, month int) (int, error)
}

type RecentPaymentStore interface {
	GetByID(ctx context.Context, id uint) (*model.Payment, error)
	List(ctx context.Context) ([]model.Payment, error)
	ListRecent(ctx context.Context, limit int) ([]model.Payment, error)
	Update(ctx context.Context, payment *model.Payment) error
}

type RecentExpenseStore interface {
	ListRecent(ctx context.Context, limit int) ([]model.Expense, error)
}

type FinanceService struct {
	finance  FinanceStore
	payments RecentPaymentStore
	expenses RecentExpenseStore
	vehicles MaintenanceVehicleStore
	now      func() time.Time
}

func NewFinanceService(finance FinanceStore, payments RecentPaymentStore, expenses RecentExpenseStore, vehicles MaintenanceVehicleStore) *FinanceService {
	return &FinanceService{
		finance:  finance,
		payments: payments,
		expenses: expenses,
		vehicles: vehicles,
		now:      time.Now,
	}
}

const recentEntriesLimit = 5

type Dashboard struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	Balance        decimal.Decimal `json:"balance"`
	MonthRevenue   decimal.Decimal `json:"month_revenue"`
	MonthExpenses  decimal.Decimal `json:"month_expenses"`
	RecentPayments []model.Payment `json:"recent_payments"`
	RecentExpenses []model.Expense `json:"recent_expenses"`
}

func (s *FinanceService) Dashboard(ctx context.Context) (*Dashboard, error) {
	totalRevenue, err := s.finance.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.finance.TotalExpenses(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthRevenue, err := s.finance.MonthRevenue(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}
	monthExpenses, err := s.finance.MonthExpenses(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}

	recentPayments, err := s.payments.ListRecent(ctx, recentEntriesLimit)
	if err != nil {
		return nil, err
	}
	recentExpenses, err := s.expenses.ListRecent(ctx, recentEntriesLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalRevenue:   totalRevenue,
		TotalExpenses:  totalExpenses,
		Balance:        totalRevenue.Sub(totalExpenses),
		MonthRevenue:   monthRevenue,
		MonthExpenses:  monthExpenses,
		RecentPayments: recentPayments,
		RecentExpenses: recentExpenses,
	}, nil
}

func (s *FinanceService) ListPayments(ctx context.Context) ([]model.Payment, error) {
	return s.payments.List(ctx)
}

// SetChequeImage records the stored cheque scan path on a payment and
// returns the previous one so the caller can clean it up.
func (s *FinanceService) SetChequeImage(ctx context.Context, id uint, relPath string) (*model.Payment, string, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if payment == nil {
		return nil, "", ErrNotFound
	}
	if !payment.Mode.RequiresBankDetails() {
		return nil, "", ErrInvalidInput
	}

	var previous string
	if payment.ChequeImageURL != nil {
		previous = *payment.ChequeImageURL
	}
	payment.ChequeImageURL = &relPath

	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, "", err
	}
	return payment, previous, nil
}

type MonthlyReport struct {
	Year               int                         `json:"year"`
	Month              int                         `json:"month"`
	Revenue            decimal.Decimal             `json:"revenue"`
	Expenses           decimal.Decimal             `json:"expenses"`
	Profit             decimal.Decimal             `json:"profit"`
	DailyRevenue       []decimal.Decimal           `json:"daily_revenue"`
	DailyExpenses      []decimal.Decimal           `json:"daily_expenses"`
	ExpensesByCategory []repository.CategoryAmount `json:"expenses_by_category"`
	TripsByType        []repository.TypeCount      `json:"trips_by_type"`
}

// fillDaySeries turns sparse per-day sums into a dense slice with one
// zero-valued entry for every day of the month.
func fillDaySeries(rows []repository.DayAmount, daysInMonth int) []decimal.Decimal {
	series := make([]decimal.Decimal, daysInMonth)
	for i := range series {
		series[i] = decimal.Zero
	}
	for _, row := range rows {
		if row.Day >= 1 && row.Day <= daysInMonth {
			series[row.Day-1] = row.Amount
		}
	}
	return series
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (s *FinanceService) MonthlyReport(ctx context.Context, year, month int) (*MonthlyReport, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, ErrInvalidInput
	}

	revenue, err := s.finance.MonthRevenue(ctx, year, month)
	if err != nil {
		return nil, err
	}
	expenses, err := s.finance.MonthExpenses(ctx, year, month)
	if err != nil {
		return nil, err
	}
	dailyRevenue, err := s.finance.DailyRevenue(ctx, year, month)
	if err != nil {
		return nil, err
	}
	dailyExpenses, err := s.finance.DailyExpenses(ctx, year, month)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.finance.ExpensesByCategory(ctx, year, month)
	if err != nil {
		return nil, err
	}
	byType, err := s.finance.TripCountsByType(ctx, year, month)
	if err != nil {
		return nil, err
	}

	days := daysInMonth(year, month)
	return &MonthlyReport{
		Year:               year,
		Month:              month,
		Revenue:            revenue,
		Expenses:           expenses,
		Profit:             revenue.Sub(expenses),
		DailyRevenue:       fillDaySeries(dailyRevenue, days),
		DailyExpenses:      fillDaySeries(dailyExpenses, days),
		ExpensesByCategory: byCategory,
		TripsByType:        byType,
	}, nil
}

type VehicleReport struct {
	Vehicle            model.Vehicle               `json:"vehicle"`
	Year               int                         `json:"year"`
	Month              int                         `json:"month"`
	Revenue            decimal.Decimal             `json:"revenue"`
	Expenses           decimal.Decimal             `json:"expenses"`
	Profit             decimal.Decimal             `json:"profit"`
	TripCount          int                         `json:"trip_count"`
	ExpensesByCategory []repository.CategoryAmount `json:"expenses_by_category"`
}

func (s *FinanceService) VehicleReport(ctx context.Context, vehicleID uint, year, month int) (*VehicleReport, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, ErrInvalidInput
	}

	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}

	revenue, err := s.finance.VehicleRevenue(ctx, vehicleID, year, month)
	if err != nil {
		return nil, err
	}
	expenses, err := s.finance.VehicleExpenses(ctx, vehicleID, year, month)
	if err != nil {
		return nil, err
	}
	tripCount, err := s.finance.VehicleTripCount(ctx, vehicleID, year, month)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.finance.VehicleExpensesByCategory(ctx, vehicleID, year, month)
	if err != nil {
		return nil, err
	}

	return &VehicleReport{
		Vehicle:            *vehicle,
		Year:               year,
		Month:              month,
		Revenue:            revenue,
		Expenses:           expenses,
		Profit:             revenue.Sub(expenses),
		TripCount:          tripCount,
		ExpensesByCategory: byCategory,
	}, nil
}
