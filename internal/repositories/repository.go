package repositories

import (
	"time"

	"donation-tracker-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	DB           *gorm.DB
	EventRepo    EventRepository
	DonationRepo DonationRepository
	EnvelopeRepo EnvelopeRepository
	IncomeRepo   IncomeRepository
	ExpenseRepo  ExpenseRepository
	OperatorRepo OperatorRepository
	UserRepo     UserRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:           db,
		EventRepo:    NewEventRepository(db),
		DonationRepo: NewDonationRepository(db),
		EnvelopeRepo: NewEnvelopeRepository(db),
		IncomeRepo:   NewIncomeRepository(db),
		ExpenseRepo:  NewExpenseRepository(db),
		OperatorRepo: NewOperatorRepository(db),
		UserRepo:     NewUserRepository(db),
	}
}

func AutoMigrate(db *gorm.DB) error {
	// Enable UUID extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	// Migrate models
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Event{},
		&models.Donation{},
		&models.Envelope{},
		&models.Income{},
		&models.Expense{},
		&models.Operator{},
	)
}

// Interface definitions

type DonationRepository interface {
	CreateDonation(donation *models.Donation) error
	GetDonationByID(id string) (*models.Donation, error)
	ListDonations(eventID string) ([]models.Donation, error)
	ListRecentDonations(eventID string, limit int) ([]models.Donation, error)
	DeleteDonation(id string) error
	DonationStatsSince(eventID string, since time.Time) (int64, float64, error)
}

type IncomeRepository interface {
	CreateIncome(income *models.Income) error
	GetIncomeByID(id string) (*models.Income, error)
	ListIncome(eventID string) ([]models.Income, error)
	DeleteIncome(id string) error
}

type ExpenseRepository interface {
	CreateExpense(expense *models.Expense) error
	GetExpenseByID(id string) (*models.Expense, error)
	ListExpenses(eventID string) ([]models.Expense, error)
	DeleteExpense(id string) error
}

type OperatorRepository interface {
	CreateOperator(operator *models.Operator) error
	GetOperatorByID(id string) (*models.Operator, error)
	ListOperators(eventID string) ([]models.Operator, error)
	UpdateOperator(operator *models.Operator) error
	DeleteOperator(id string) error
}

type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	CreateUser(user *models.User) error
	DeleteUser(id string) error
	ListUsersByIDs(ids []uuid.UUID) ([]models.User, error)

	GetProfileByID(id string) (*models.UserProfile, error)
	UpsertProfile(profile *models.UserProfile) error
	ListProfiles(eventID string) ([]models.UserProfile, error)
	DeleteProfile(id string) error
}
