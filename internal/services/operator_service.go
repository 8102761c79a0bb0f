package services

import (
	"errors"

	"donation-tracker-backend/internal/config"
	"donation-tracker-backend/internal/models"
	"donation-tracker-backend/internal/repositories"

	"github.com/google/uuid"
)

// OperatorService manages the roster of collection-route staff shown on the
// event settings page. Operators are display rows, not login accounts.
type OperatorService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewOperatorService(repo *repositories.Repository, cfg *config.Config) *OperatorService {
	return &OperatorService{repo: repo, cfg: cfg}
}

type CreateOperatorRequest struct {
	EventID uuid.UUID
	Name    string
	Phone   string
	Role    string
}

func (s *OperatorService) CreateOperator(req CreateOperatorRequest) (*models.Operator, error) {
	if req.Name == "" {
		return nil, errors.New("operator name is required")
	}

	if _, err := s.repo.EventRepo.GetEventByID(req.EventID.String()); err != nil {
		return nil, errors.New("event not found")
	}

	role := req.Role
	if role == "" {
		role = models.DefaultRole
	}

	operator := &models.Operator{
		ID:       uuid.New(),
		EventID:  req.EventID,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     role,
		IsActive: true,
	}

	if err := s.repo.OperatorRepo.CreateOperator(operator); err != nil {
		return nil, err
	}

	return operator, nil
}

type UpdateOperatorRequest struct {
	Name     *string
	Phone    *string
	Role     *string
	IsActive *bool
}

func (s *OperatorService) UpdateOperator(id string, req UpdateOperatorRequest) (*models.Operator, error) {
	operator, err := s.repo.OperatorRepo.GetOperatorByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		operator.Name = *req.Name
	}
	if req.Phone != nil {
		operator.Phone = *req.Phone
	}
	if req.Role != nil {
		operator.Role = *req.Role
	}
	if req.IsActive != nil {
		operator.IsActive = *req.IsActive
	}

	if err := s.repo.OperatorRepo.UpdateOperator(operator); err != nil {
		return nil, err
	}

	return operator, nil
}

func (s *OperatorService) ListOperators(eventID string) ([]models.Operator, error) {
	return s.repo.OperatorRepo.ListOperators(eventID)
}

func (s *OperatorService) DeleteOperator(id string) error {
	return s.repo.OperatorRepo.DeleteOperator(id)
}
