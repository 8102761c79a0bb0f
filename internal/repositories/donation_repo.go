package repositories

import (
	"errors"
	"fmt"
	"time"

	"donation-tracker-backend/internal/models"

	"gorm.io/gorm"
)

type donationRepo struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepo{db: db}
}

func (r *donationRepo) CreateDonation(donation *models.Donation) error {
	if donation == nil {
		return errors.New("donation cannot be nil")
	}
	return r.db.Create(donation).Error
}

func (r *donationRepo) GetDonationByID(id string) (*models.Donation, error) {
	if id == "" {
		return nil, errors.New("donation ID cannot be empty")
	}

	var donation models.Donation
	if err := r.db.Where("id = ?", id).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("donation not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}

	return &donation, nil
}

func (r *donationRepo) ListDonations(eventID string) ([]models.Donation, error) {
	var donations []models.Donation

	query := r.db.Order("created_at DESC")
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	if err := query.Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	return donations, nil
}

func (r *donationRepo) ListRecentDonations(eventID string, limit int) ([]models.Donation, error) {
	if limit <= 0 {
		limit = 10
	}

	var donations []models.Donation

	query := r.db.Order("created_at DESC").Limit(limit)
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	if err := query.Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent donations: %w", err)
	}

	return donations, nil
}

func (r *donationRepo) DeleteDonation(id string) error {
	if id == "" {
		return errors.New("donation ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Donation{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete donation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("donation not found with ID: %s", id)
	}

	return nil
}

// DonationStatsSince reports the count and amount of donations recorded at or
// after the given instant, used for the dashboard's today figures.
func (r *donationRepo) DonationStatsSince(eventID string, since time.Time) (int64, float64, error) {
	var row struct {
		Count int64
		Total float64
	}

	err := r.db.Raw(`
		SELECT COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total
		FROM donations
		WHERE event_id = ? AND created_at >= ?
	`, eventID, since).Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get donation stats: %w", err)
	}

	return row.Count, row.Total, nil
}
