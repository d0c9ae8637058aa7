package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// CreateFull inserts a trip with its assignments, extra expense lines and the
// optional initial payment in one transaction.
func (r *TripRepository) CreateFull(
	ctx context.Context,
	trip *model.Trip,
	assignments []model.TripAssignment,
	expenses []model.TripExpense,
	payment *model.Payment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		for i := range assignments {
			assignments[i].TripID = trip.ID
		}
		if len(assignments) > 0 {
			if err := tx.Create(&assignments).Error; err != nil {
				return err
			}
		}
		for i := range expenses {
			expenses[i].TripID = trip.ID
		}
		if len(expenses) > 0 {
			if err := tx.Create(&expenses).Error; err != nil {
				return err
			}
		}
		if payment != nil {
			payment.TripID = trip.ID
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateFull saves the trip and replaces its assignments and expense lines.
func (r *TripRepository) UpdateFull(
	ctx context.Context,
	trip *model.Trip,
	assignments []model.TripAssignment,
	expenses []model.TripExpense,
	payment *model.Payment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(trip).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&model.TripAssignment{}).Error; err != nil {
			return err
		}
		for i := range assignments {
			assignments[i].ID = 0
			assignments[i].TripID = trip.ID
		}
		if len(assignments) > 0 {
			if err := tx.Create(&assignments).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&model.TripExpense{}).Error; err != nil {
			return err
		}
		for i := range expenses {
			expenses[i].ID = 0
			expenses[i].TripID = trip.ID
		}
		if len(expenses) > 0 {
			if err := tx.Create(&expenses).Error; err != nil {
				return err
			}
		}
		if payment != nil {
			payment.TripID = trip.ID
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCascade removes the trip and its dependent rows in one transaction.
func (r *TripRepository) DeleteCascade(ctx context.Context, tripID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", tripID).Delete(&model.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&model.TripExpense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&model.TripAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Trip{}, tripID).Error
	})
}

func (r *TripRepository) GetByID(ctx context.Context, id uint) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) Update(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

// TripFilter narrows the trip listing; zero values are ignored.
type TripFilter struct {
	Type     model.TripType
	Status   model.TripStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
	Page     int
	PerPage  int
}

func (r *TripRepository) List(ctx context.Context, filter TripFilter) ([]model.Trip, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Trip{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("departure_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("departure_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"name ILIKE ? OR client_name ILIKE ? OR departure_point ILIKE ? OR arrival_point ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 10
	}

	var trips []model.Trip
	err := query.
		Order("departure_date DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&trips).Error
	return trips, total, err
}

// FindConflicts returns trips that have an assignment on the exact departure
// date using the same vehicle or the same driver. Multi-day trips are matched
// on their start date only.
func (r *TripRepository) FindConflicts(ctx context.Context, date time.Time, vehicleID, driverID uint) ([]model.Trip, error) {
	var trips []model.Trip
	err := r.db.WithContext(ctx).
		Distinct("trips.*").
		Joins("JOIN trip_assignments ta ON ta.trip_id = trips.id").
		Where("trips.departure_date = ?", date).
		Where("ta.vehicle_id = ? OR ta.driver_id = ?", vehicleID, driverID).
		Find(&trips).Error
	return trips, err
}

// LastCodeWithPrefix returns the highest voyage code starting with prefix,
// or "" when none exists.
func (r *TripRepository) LastCodeWithPrefix(ctx context.Context, prefix string) (string, error) {
	var trip model.Trip
	err := r.db.WithContext(ctx).
		Where("code LIKE ?", prefix+"%").
		Order("code DESC").
		First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return trip.Code, nil
}

// CalendarRow is one trip with the assigned vehicle/driver identity flattened
// for calendar rendering. Trips with several assignments contribute one row
// per assignment.
type CalendarRow struct {
	TripID          uint       `json:"trip_id"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	DeparturePoint  string     `json:"departure_point"`
	ArrivalPoint    string     `json:"arrival_point"`
	DepartureDate   time.Time  `json:"departure_date"`
	DepartureTime   *string    `json:"departure_time"`
	ArrivalDate     *time.Time `json:"arrival_date"`
	ArrivalTime     *string    `json:"arrival_time"`
	ClientName      string     `json:"client_name"`
	ClientPhone     string     `json:"client_phone"`
	Adults          int        `json:"adults"`
	Children        int        `json:"children"`
	Infants         int        `json:"infants"`
	PlateNumber     *string    `json:"plate_number"`
	VehicleModel    *string    `json:"vehicle_model"`
	DriverFirstName *string    `json:"driver_first_name"`
	DriverLastName  *string    `json:"driver_last_name"`
}

func (r *TripRepository) ListCalendarRows(ctx context.Context) ([]CalendarRow, error) {
	var rows []CalendarRow
	err := r.db.WithContext(ctx).Table("trips t").
		Select(`
			t.id AS trip_id,
			t.type::text AS type,
			t.status::text AS status,
			t.departure_point,
			t.arrival_point,
			t.departure_date,
			t.departure_time,
			t.arrival_date,
			t.arrival_time,
			t.client_name,
			t.client_phone,
			t.adults,
			t.children,
			t.infants,
			v.plate_number,
			v.model AS vehicle_model,
			d.first_name AS driver_first_name,
			d.last_name AS driver_last_name
		`).
		Joins("LEFT JOIN trip_assignments ta ON ta.trip_id = t.id").
		Joins("LEFT JOIN vehicles v ON v.id = ta.vehicle_id").
		Joins("LEFT JOIN drivers d ON d.id = ta.driver_id").
		Order("t.departure_date").
		Scan(&rows).Error
	return rows, err
}

func (r *TripRepository) ListExpensesByTripID(ctx context.Context, tripID uint) ([]model.TripExpense, error) {
	var expenses []model.TripExpense
	err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).Find(&expenses).Error
	return expenses, err
}
