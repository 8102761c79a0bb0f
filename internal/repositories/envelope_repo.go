package repositories

import (
	"errors"
	"fmt"

	"donation-tracker-backend/internal/models"

	"gorm.io/gorm"
)

type EnvelopeRepository interface {
	CreateEnvelope(envelope *models.Envelope) error
	CreateEnvelopes(envelopes []*models.Envelope) error
	GetEnvelopeByID(id string) (*models.Envelope, error)
	ListEnvelopes(eventID string) ([]models.Envelope, error)
	UpdateEnvelope(envelope *models.Envelope) error
	DeleteEnvelope(id string) error
}

type envelopeRepo struct {
	db *gorm.DB
}

func NewEnvelopeRepository(db *gorm.DB) EnvelopeRepository {
	return &envelopeRepo{db: db}
}

func (r *envelopeRepo) CreateEnvelope(envelope *models.Envelope) error {
	if envelope == nil {
		return errors.New("envelope cannot be nil")
	}
	return r.db.Create(envelope).Error
}

// CreateEnvelopes inserts a pre-numbered batch in a single transaction so a
// partial bulk run never leaves gaps in the numbering.
func (r *envelopeRepo) CreateEnvelopes(envelopes []*models.Envelope) error {
	if len(envelopes) == 0 {
		return errors.New("envelope batch cannot be empty")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(envelopes).Error
	})
}

func (r *envelopeRepo) GetEnvelopeByID(id string) (*models.Envelope, error) {
	if id == "" {
		return nil, errors.New("envelope ID cannot be empty")
	}

	var envelope models.Envelope
	if err := r.db.Where("id = ?", id).First(&envelope).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("envelope not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get envelope: %w", err)
	}

	return &envelope, nil
}

func (r *envelopeRepo) ListEnvelopes(eventID string) ([]models.Envelope, error) {
	var envelopes []models.Envelope

	query := r.db.Order("route_name ASC, envelope_no ASC")
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	if err := query.Find(&envelopes).Error; err != nil {
		return nil, fmt.Errorf("failed to list envelopes: %w", err)
	}

	return envelopes, nil
}

func (r *envelopeRepo) UpdateEnvelope(envelope *models.Envelope) error {
	if envelope == nil {
		return errors.New("envelope cannot be nil")
	}

	var existing models.Envelope
	if err := r.db.Where("id = ?", envelope.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("envelope not found with ID: %s", envelope.ID)
		}
		return fmt.Errorf("failed to check envelope existence: %w", err)
	}

	return r.db.Save(envelope).Error
}

func (r *envelopeRepo) DeleteEnvelope(id string) error {
	if id == "" {
		return errors.New("envelope ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Envelope{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete envelope: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("envelope not found with ID: %s", id)
	}

	return nil
}
