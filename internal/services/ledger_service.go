package services

import (
	"errors"
	"time"

	"donation-tracker-backend/internal/config"
	"donation-tracker-backend/internal/models"
	"donation-tracker-backend/internal/realtime"
	"donation-tracker-backend/internal/repositories"

	"github.com/google/uuid"
)

// LedgerService records miscellaneous income and expenses. Both are
// immutable ledger rows: create, list, delete.
type LedgerService struct {
	repo *repositories.Repository
	feed *realtime.Feed
	cfg  *config.Config
}

func NewLedgerService(repo *repositories.Repository, feed *realtime.Feed, cfg *config.Config) *LedgerService {
	return &LedgerService{repo: repo, feed: feed, cfg: cfg}
}

type CreateLedgerEntryRequest struct {
	EventID     uuid.UUID
	Category    string
	Description string
	Amount      float64
	Date        *time.Time
	ReceiptNo   string
	ProcessedBy string
}

func (s *LedgerService) validate(req CreateLedgerEntryRequest) error {
	if req.Category == "" {
		return errors.New("category is required")
	}
	if req.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	if _, err := s.repo.EventRepo.GetEventByID(req.EventID.String()); err != nil {
		return errors.New("event not found")
	}
	return nil
}

func (s *LedgerService) CreateIncome(req CreateLedgerEntryRequest) (*models.Income, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	income := &models.Income{
		ID:           uuid.New(),
		EventID:      req.EventID,
		Category:     req.Category,
		Description:  req.Description,
		Amount:       req.Amount,
		ReceivedDate: date,
		ReceiptNo:    req.ReceiptNo,
		ProcessedBy:  req.ProcessedBy,
	}

	if err := s.repo.IncomeRepo.CreateIncome(income); err != nil {
		return nil, err
	}

	s.feed.Publish(realtime.Change{
		Table:   realtime.TableIncome,
		Op:      realtime.OpInsert,
		EventID: income.EventID,
		Row:     income,
	})

	return income, nil
}

func (s *LedgerService) ListIncome(eventID string) ([]models.Income, error) {
	return s.repo.IncomeRepo.ListIncome(eventID)
}

func (s *LedgerService) DeleteIncome(id string) error {
	income, err := s.repo.IncomeRepo.GetIncomeByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.IncomeRepo.DeleteIncome(id); err != nil {
		return err
	}

	s.feed.Publish(realtime.Change{
		Table:   realtime.TableIncome,
		Op:      realtime.OpDelete,
		EventID: income.EventID,
		Row:     income,
	})

	return nil
}

func (s *LedgerService) CreateExpense(req CreateLedgerEntryRequest) (*models.Expense, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	expense := &models.Expense{
		ID:          uuid.New(),
		EventID:     req.EventID,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: date,
		ReceiptNo:   req.ReceiptNo,
		ProcessedBy: req.ProcessedBy,
	}

	if err := s.repo.ExpenseRepo.CreateExpense(expense); err != nil {
		return nil, err
	}

	s.feed.Publish(realtime.Change{
		Table:   realtime.TableExpenses,
		Op:      realtime.OpInsert,
		EventID: expense.EventID,
		Row:     expense,
	})

	return expense, nil
}

func (s *LedgerService) ListExpenses(eventID string) ([]models.Expense, error) {
	return s.repo.ExpenseRepo.ListExpenses(eventID)
}

func (s *LedgerService) DeleteExpense(id string) error {
	expense, err := s.repo.ExpenseRepo.GetExpenseByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.ExpenseRepo.DeleteExpense(id); err != nil {
		return err
	}

	s.feed.Publish(realtime.Change{
		Table:   realtime.TableExpenses,
		Op:      realtime.OpDelete,
		EventID: expense.EventID,
		Row:     expense,
	})

	return nil
}
