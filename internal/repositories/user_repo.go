package repositories

import (
	"errors"
	"fmt"

	"donation-tracker-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) DeleteUser(id string) error {
	if id == "" {
		return errors.New("user ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found with ID: %s", id)
	}

	return nil
}

func (r *userRepo) ListUsersByIDs(ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepo) GetProfileByID(id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile inserts the profile row or updates the mutable display
// columns when a row with the same ID already exists.
func (r *userRepo) UpsertProfile(profile *models.UserProfile) error {
	if profile == nil {
		return errors.New("profile cannot be nil")
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"event_id", "display_name", "phone", "role", "updated_at"}),
	}).Create(profile).Error
}

func (r *userRepo) ListProfiles(eventID string) ([]models.UserProfile, error) {
	var profiles []models.UserProfile

	query := r.db.Order("display_name ASC")
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	if err := query.Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

func (r *userRepo) DeleteProfile(id string) error {
	if id == "" {
		return errors.New("profile ID cannot be empty")
	}

	// Absent profiles are fine; the credential may exist without one.
	return r.db.Where("id = ?", id).Delete(&models.UserProfile{}).Error
}
