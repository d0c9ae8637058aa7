package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinanceRepository holds the read-only aggregate queries behind the financial
// reports. All monetary sums come back as exact decimals; absent rows sum to zero.
type FinanceRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) *FinanceRepository {
	return &FinanceRepository{db: db}
}

type sumRow struct {
	Total decimal.Decimal
}

func (r *FinanceRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var row sumRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(paid_amount), 0) AS total FROM payments`).
		Scan(&row).Error
	return row.Total, err
}

func (r *FinanceRepository) MonthRevenue(ctx context.Context, year, month int) (decimal.Decimal, error) {
	var row sumRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(paid_amount), 0) AS total
		     FROM payments
		     WHERE EXTRACT(YEAR FROM paid_at) = ? AND EXTRACT(MONTH FROM paid_at) = ?`,
			year, month).
		Scan(&row).Error
	return row.Total, err
}

func (r *FinanceRepository) TotalExpenses(ctx context.Context) (decimal.Decimal, error) {
	var row sumRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(amount), 0) AS total FROM expenses`).
		Scan(&row).Error
	return row.Total, err
}

func (r *FinanceRepository) MonthExpenses(ctx context.Context, year, month int) (decimal.Decimal, error) {
	var row sumRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(amount), 0) AS total
		     FROM expenses
		     WHERE EXTRACT(YEAR FROM date) = ? AND EXTRACT(MONTH FROM date) = ?`,
			year, month).
		Scan(&row).Error
	return row.Total, err
}

// DayAmount is one day's sum within a month.
type DayAmount struct {
	Day    int             `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

func (r *FinanceRepository) DailyRevenue(ctx context.Context, year, month int) ([]DayAmount, error) {
	var rows []DayAmount
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXTRACT(DAY FROM paid_at)::int AS day, SUM(paid_amount) AS amount
		     FROM payments
		     WHERE EXTRACT(YEAR FROM paid_at) = ? AND EXTRACT(MONTH FROM paid_at) = ?
		     GROUP BY day
		     ORDER BY day`,
			year, month).
		Scan(&rows).Error
	return rows, err
}

func (r *FinanceRepository) DailyExpenses(ctx context.Context, year, month int) ([]DayAmount, error) {
	var rows []DayAmount
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXTRACT(DAY FROM date)::int AS day, SUM(amount) AS amount
		     FROM expenses
		     WHERE EXTRACT(YEAR FROM date) = ? AND EXTRACT(MONTH FROM date) = ?
		     GROUP BY day
		     ORDER BY day`,
			year, month).
		Scan(&rows).Error
	return rows, err
}

// CategoryAmount is an expense sum grouped by category.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r *FinanceRepository) ExpensesByCategory(ctx context.Context, year, month int) ([]CategoryAmount, error) {
	var rows []CategoryAmount
	err := r.db.WithContext(ctx).
		Raw(`SELECT category::text AS category, SUM(amount) AS amount
		     FROM expenses
		     WHERE EXTRACT(YEAR FROM date) = ? AND EXTRACT(MONTH FROM date) = ?
		     GROUP BY category
		     ORDER BY category`,
			year, month).
		Scan(&rows).Error
	return rows, err
}

func (r *FinanceRepository) VehicleExpensesByCategory(ctx context.Context, vehicleID uint, year, month int) ([]CategoryAmount, error) {
	var rows []CategoryAmount
	err := r.db.WithContext(ctx).
		Raw(`SELECT category::text AS category, SUM(amount) AS amount
		     FROM expenses
		     WHERE vehicle_id = ?
		       AND EXTRACT(YEAR FROM date) = ? AND EXTRACT(MONTH FROM date) = ?
		     GROUP BY category
		     ORDER BY category`,
			vehicleID, year, month).
		Scan(&rows).Error
	return rows, err
}

// TypeCount is a trip count grouped by trip type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

func (r *FinanceRepository) TripCountsByType(ctx context.Context, year, month int) ([]TypeCount, error) {
	var rows []TypeCount
	err := r.db.WithContext(ctx).
		Raw(`SELECT type::text AS type, COUNT(*)::int AS count
		     FROM trips
		     WHERE EXTRACT(YEAR FROM departure_date) = ? AND EXTRACT(MONTH FROM departure_date) = ?
		     GROUP BY type
		     ORDER BY type`,
			year, month).
		Scan(&rows).Error
	return rows, err
}

// VehicleRevenue sums the price of non-cancelled trips the vehicle was assigned
// to in the given month: the sell price, or the commission for commission trips.
func (r *FinanceRepository) VehicleRevenue(ctx context.Context, vehicleID uint, year, month int) (decimal.Decimal, error) {
	var row sumRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(CASE WHEN t.is_commission THEN t.commission ELSE t.sell_price END), 0) AS total
		     FROM trips t
		     WHERE t.status <> 'cancelled'
		       AND EXTRACT(YEAR FROM t.departure_date) = ? AND EXTRACT(MONTH FROM t.departure_date) = ?
		       AND EXISTS (
		           SELECT 1 FROM trip_assignments ta
		           WHERE ta.trip_id = t.id AND ta.vehicle_id = ?
		       )`,
			year, month, vehicleID).
		Scan(&row).Error
	return row.Total, err
}

func (r *FinanceRepository) VehicleExpenses(ctx context.Context, vehicleID uint, year, month int) (decimal.Decimal, error) {
	var row sumRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(amount), 0) AS total
		     FROM expenses
		     WHERE vehicle_id = ?
		       AND EXTRACT(YEAR FROM date) = ? AND EXTRACT(MONTH FROM date) = ?`,
			vehicleID, year, month).
		Scan(&row).Error
	return row.Total, err
}

func (r *FinanceRepository) VehicleTripCount(ctx context.Context, vehicleID uint, year, month int) (int, error) {
	var row struct {
		Count int
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*)::int AS count
		     FROM trips t
		     WHERE t.status <> 'cancelled'
		       AND EXTRACT(YEAR FROM t.departure_date) = ? AND EXTRACT(MONTH FROM t.departure_date) = ?
		       AND EXISTS (
		           SELECT 1 FROM trip_assignments ta
		           WHERE ta.trip_id = t.id AND ta.vehicle_id = ?
		       )`,
			year, month, vehicleID).
		Scan(&row).Error
	return row.Count, err
}
