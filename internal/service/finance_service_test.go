package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type fakeFinanceStore struct {
	totalRevenue  decimal.Decimal
	totalExpenses decimal.Decimal
	monthRevenue  decimal.Decimal
	monthExpenses decimal.Decimal
	dailyRevenue  []repository.DayAmount
	dailyExpenses []repository.DayAmount
	byCategory    []repository.CategoryAmount
	byType        []repository.TypeCount

	vehicleRevenue  decimal.Decimal
	vehicleExpenses decimal.Decimal
	tripCount       int
}

func (f *fakeFinanceStore) TotalRevenue(_ context.Context) (decimal.Decimal, error) {
	return f.totalRevenue, nil
}

func (f *fakeFinanceStore) MonthRevenue(_ context.Context, _, _ int) (decimal.Decimal, error) {
	return f.monthRevenue, nil
}

func (f *fakeFinanceStore) TotalExpenses(_ context.Context) (decimal.Decimal, error) {
	return f.totalExpenses, nil
}

func (f *fakeFinanceStore) MonthExpenses(_ context.Context, _, _ int) (decimal.Decimal, error) {
	return f.monthExpenses, nil
}

func (f *fakeFinanceStore) DailyRevenue(_ context.Context, _, _ int) ([]repository.DayAmount, error) {
	return f.dailyRevenue, nil
}

func (f *fakeFinanceStore) DailyExpenses(_ context.Context, _, _ int) ([]repository.DayAmount, error) {
	return f.dailyExpenses, nil
}

func (f *fakeFinanceStore) ExpensesByCategory(_ context.Context, _, _ int) ([]repository.CategoryAmount, error) {
	return f.byCategory, nil
}

func (f *fakeFinanceStore) VehicleExpensesByCategory(_ context.Context, _ uint, _, _ int) ([]repository.CategoryAmount, error) {
	return f.byCategory, nil
}

func (f *fakeFinanceStore) TripCountsByType(_ context.Context, _, _ int) ([]repository.TypeCount, error) {
	return f.byType, nil
}

func (f *fakeFinanceStore) VehicleRevenue(_ context.Context, _ uint, _, _ int) (decimal.Decimal, error) {
	return f.vehicleRevenue, nil
}

func (f *fakeFinanceStore) VehicleExpenses(_ context.Context, _ uint, _, _ int) (decimal.Decimal, error) {
	return f.vehicleExpenses, nil
}

func (f *fakeFinanceStore) VehicleTripCount(_ context.Context, _ uint, _, _ int) (int, error) {
	return f.tripCount, nil
}

type fakePaymentListStore struct {
	payments []model.Payment
}

func (f fakePaymentListStore) GetByID(_ context.Context, id uint) (*model.Payment, error) {
	for i := range f.payments {
		if f.payments[i].ID == id {
			return &f.payments[i], nil
		}
	}
	return nil, nil
}

func (f fakePaymentListStore) Update(_ context.Context, payment *model.Payment) error {
	for i := range f.payments {
		if f.payments[i].ID == payment.ID {
			f.payments[i] = *payment
		}
	}
	return nil
}

func (f fakePaymentListStore) List(_ context.Context) ([]model.Payment, error) {
	return f.payments, nil
}

func (f fakePaymentListStore) ListRecent(_ context.Context, limit int) ([]model.Payment, error) {
	if len(f.payments) > limit {
		return f.payments[:limit], nil
	}
	return f.payments, nil
}

type fakeExpenseListStore struct {
	expenses []model.Expense
}

func (f fakeExpenseListStore) ListRecent(_ context.Context, limit int) ([]model.Expense, error) {
	if len(f.expenses) > limit {
		return f.expenses[:limit], nil
	}
	return f.expenses, nil
}

func mustDecimal(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	value, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", raw, err)
	}
	return value
}

func TestDashboardBalance(t *testing.T) {
	finance := &fakeFinanceStore{
		totalRevenue:  mustDecimal(t, "1000.00"),
		totalExpenses: mustDecimal(t, "400.00"),
		monthRevenue:  mustDecimal(t, "250.00"),
		monthExpenses: mustDecimal(t, "100.00"),
	}
	svc := NewFinanceService(finance, fakePaymentListStore{}, fakeExpenseListStore{}, &fakeVehicleStore{})
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) }

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if got := dashboard.Balance.String(); got != "600" {
		t.Errorf("balance = %s, want 600", got)
	}
	if got := dashboard.MonthRevenue.String(); got != "250" {
		t.Errorf("month revenue = %s, want 250", got)
	}
}

func TestMonthlyReportZeroFillsDaySeries(t *testing.T) {
	finance := &fakeFinanceStore{
		monthRevenue: mustDecimal(t, "1000.00"),
		dailyRevenue: []repository.DayAmount{
			{Day: 3, Amount: mustDecimal(t, "600.00")},
			{Day: 29, Amount: mustDecimal(t, "400.00")},
		},
	}
	svc := NewFinanceService(finance, fakePaymentListStore{}, fakeExpenseListStore{}, &fakeVehicleStore{})

	report, err := svc.MonthlyReport(context.Background(), 2024, 3)
	if err != nil {
		t.Fatalf("monthly report: %v", err)
	}

	if len(report.DailyRevenue) != 31 {
		t.Fatalf("got %d days, want 31", len(report.DailyRevenue))
	}
	if got := report.DailyRevenue[2].String(); got != "600" {
		t.Errorf("day 3 = %s, want 600", got)
	}
	if got := report.DailyRevenue[28].String(); got != "400" {
		t.Errorf("day 29 = %s, want 400", got)
	}
	if !report.DailyRevenue[0].IsZero() || !report.DailyRevenue[30].IsZero() {
		t.Error("untouched days must be zero")
	}

	total := decimal.Zero
	for _, amount := range report.DailyRevenue {
		total = total.Add(amount)
	}
	if !total.Equal(report.Revenue) {
		t.Errorf("day series sums to %s, month revenue is %s", total, report.Revenue)
	}
}

func TestMonthlyReportFebruaryLeapYear(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceStore{}, fakePaymentListStore{}, fakeExpenseListStore{}, &fakeVehicleStore{})

	report, err := svc.MonthlyReport(context.Background(), 2024, 2)
	if err != nil {
		t.Fatalf("monthly report: %v", err)
	}
	if len(report.DailyExpenses) != 29 {
		t.Errorf("got %d days for Feb 2024, want 29", len(report.DailyExpenses))
	}
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceStore{}, fakePaymentListStore{}, fakeExpenseListStore{}, &fakeVehicleStore{})

	if _, err := svc.MonthlyReport(context.Background(), 2024, 13); err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestVehicleReportProfit(t *testing.T) {
	vehicles := &fakeVehicleStore{vehicles: []model.Vehicle{
		{ID: 1, PlateNumber: "AB-123"},
	}}
	finance := &fakeFinanceStore{
		vehicleRevenue:  mustDecimal(t, "900.00"),
		vehicleExpenses: mustDecimal(t, "150.00"),
		tripCount:       4,
	}
	svc := NewFinanceService(finance, fakePaymentListStore{}, fakeExpenseListStore{}, vehicles)

	report, err := svc.VehicleReport(context.Background(), 1, 2024, 3)
	if err != nil {
		t.Fatalf("vehicle report: %v", err)
	}
	if got := report.Profit.String(); got != "750" {
		t.Errorf("profit = %s, want 750", got)
	}
	if report.TripCount != 4 {
		t.Errorf("trip count = %d, want 4", report.TripCount)
	}

	if _, err := svc.VehicleReport(context.Background(), 99, 2024, 3); err != ErrNotFound {
		t.Fatalf("missing vehicle err = %v, want ErrNotFound", err)
	}
}
