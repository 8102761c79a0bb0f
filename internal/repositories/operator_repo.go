package repositories

import (
	"errors"
	"fmt"

	"donation-tracker-backend/internal/models"

	"gorm.io/gorm"
)

type operatorRepo struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) OperatorRepository {
	return &operatorRepo{db: db}
}

func (r *operatorRepo) CreateOperator(operator *models.Operator) error {
	if operator == nil {
		return errors.New("operator cannot be nil")
	}
	return r.db.Create(operator).Error
}

func (r *operatorRepo) GetOperatorByID(id string) (*models.Operator, error) {
	if id == "" {
		return nil, errors.New("operator ID cannot be empty")
	}

	var operator models.Operator
	if err := r.db.Where("id = ?", id).First(&operator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("operator not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}

	return &operator, nil
}

func (r *operatorRepo) ListOperators(eventID string) ([]models.Operator, error) {
	var operators []models.Operator

	query := r.db.Order("name ASC")
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	if err := query.Find(&operators).Error; err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}

	return operators, nil
}

func (r *operatorRepo) UpdateOperator(operator *models.Operator) error {
	if operator == nil {
		return errors.New("operator cannot be nil")
	}

	var existing models.Operator
	if err := r.db.Where("id = ?", operator.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("operator not found with ID: %s", operator.ID)
		}
		return fmt.Errorf("failed to check operator existence: %w", err)
	}

	return r.db.Save(operator).Error
}

func (r *operatorRepo) DeleteOperator(id string) error {
	if id == "" {
		return errors.New("operator ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Operator{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete operator: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("operator not found with ID: %s", id)
	}

	return nil
}
