package service

import (
	"context"

	"github.com/shopspring/decimal"

	"fleet-service/internal/model"
)

type ExpenseStore interface {
	Create(ctx context.Context, expense *model.Expense) error
	GetByID(ctx context.Context, id uint) (*model.Expense, error)
	List(ctx context.Context) ([]model.Expense, error)
	Update(ctx context.Context, expense *model.Expense) error
	Delete(ctx context.Context, id uint) error
}

type ExpenseService struct {
	expenses ExpenseStore
	vehicles MaintenanceVehicleStore
}

func NewExpenseService(expenses ExpenseStore, vehicles MaintenanceVehicleStore) *ExpenseService {
	return &ExpenseService{expenses: expenses, vehicles: vehicles}
}

type ExpenseInput struct {
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
	VehicleID   *uint  `json:"vehicle_id"`
}

func (s *ExpenseService) buildExpense(ctx context.Context, input ExpenseInput) (*model.Expense, error) {
	category := model.ExpenseCategory(input.Category)
	if !category.Valid() {
		return nil, ErrInvalidInput
	}
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || amount.IsNegative() {
		return nil, ErrInvalidInput
	}
	date, err := parseRequiredDate(input.Date)
	if err != nil {
		return nil, err
	}
	if input.VehicleID != nil {
		vehicle, err := s.vehicles.GetByID(ctx, *input.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			return nil, ErrInvalidInput
		}
	}

	return &model.Expense{
		Category:    category,
		Amount:      amount,
		Date:        date,
		Description: input.Description,
		VehicleID:   input.VehicleID,
	}, nil
}

func (s *ExpenseService) Create(ctx context.Context, principal model.Principal, input ExpenseInput) (*model.Expense, error) {
	expense, err := s.buildExpense(ctx, input)
	if err != nil {
		return nil, err
	}
	expense.CreatedBy = &principal.UserID

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) Update(ctx context.Context, id uint, input ExpenseInput) (*model.Expense, error) {
	existing, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	updated, err := s.buildExpense(ctx, input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt

	if err := s.expenses.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ExpenseService) GetByID(ctx context.Context, id uint) (*model.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrNotFound
	}
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context) ([]model.Expense, error) {
	return s.expenses.List(ctx)
}

func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrNotFound
	}
	return s.expenses.Delete(ctx, id)
}
