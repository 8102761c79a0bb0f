package repositories

import (
	"errors"
	"fmt"

	"donation-tracker-backend/internal/models"

	"gorm.io/gorm"
)

// Income and expense rows are independent, immutable ledger entries with the
// same shape, so both repositories live here.

type incomeRepo struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepo{db: db}
}

func (r *incomeRepo) CreateIncome(income *models.Income) error {
	if income == nil {
		return errors.New("income cannot be nil")
	}
	return r.db.Create(income).Error
}

func (r *incomeRepo) GetIncomeByID(id string) (*models.Income, error) {
	if id == "" {
		return nil, errors.New("income ID cannot be empty")
	}

	var income models.Income
	if err := r.db.Where("id = ?", id).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("income not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get income: %w", err)
	}

	return &income, nil
}

func (r *incomeRepo) ListIncome(eventID string) ([]models.Income, error) {
	var items []models.Income

	query := r.db.Order("received_date DESC")
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}

	return items, nil
}

func (r *incomeRepo) DeleteIncome(id string) error {
	if id == "" {
		return errors.New("income ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Income{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete income: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("income not found with ID: %s", id)
	}

	return nil
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) CreateExpense(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}
	return r.db.Create(expense).Error
}

func (r *expenseRepo) GetExpenseByID(id string) (*models.Expense, error) {
	if id == "" {
		return nil, errors.New("expense ID cannot be empty")
	}

	var expense models.Expense
	if err := r.db.Where("id = ?", id).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("expense not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &expense, nil
}

func (r *expenseRepo) ListExpenses(eventID string) ([]models.Expense, error) {
	var items []models.Expense

	query := r.db.Order("expense_date DESC")
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return items, nil
}

func (r *expenseRepo) DeleteExpense(id string) error {
	if id == "" {
		return errors.New("expense ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("expense not found with ID: %s", id)
	}

	return nil
}
