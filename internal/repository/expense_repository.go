package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uint) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) List(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Order("date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) ListRecent(ctx context.Context, limit int) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Order("date DESC").Limit(limit).Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Expense{}, id).Error
}
