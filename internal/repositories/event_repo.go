package repositories

import (
	"errors"
	"fmt"

	"donation-tracker-backend/internal/models"

	"gorm.io/gorm"
)

type EventRepository interface {
	CreateEvent(event *models.Event) error
	GetEventByID(id string) (*models.Event, error)
	ListEvents() ([]models.Event, error)
	UpdateEvent(event *models.Event) error
	GetEventSummary(id string) (*models.EventSummary, error)
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) CreateEvent(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}
	return r.db.Create(event).Error
}

func (r *eventRepo) GetEventByID(id string) (*models.Event, error) {
	if id == "" {
		return nil, errors.New("event ID cannot be empty")
	}

	var event models.Event
	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (r *eventRepo) ListEvents() ([]models.Event, error) {
	var events []models.Event
	if err := r.db.Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) UpdateEvent(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	var existing models.Event
	if err := r.db.Where("id = ?", event.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("event not found with ID: %s", event.ID)
		}
		return fmt.Errorf("failed to check event existence: %w", err)
	}

	return r.db.Save(event).Error
}

// GetEventSummary aggregates the event's financial position in one query.
// PercentReached is left at zero here; the service layer derives it from the
// net amount and the target.
func (r *eventRepo) GetEventSummary(id string) (*models.EventSummary, error) {
	if id == "" {
		return nil, errors.New("event ID cannot be empty")
	}

	var summary models.EventSummary
	err := r.db.Raw(`
		SELECT
			e.id AS event_id,
			e.name AS event_name,
			e.target_amount,
			e.is_active,
			COALESCE(d.total_donated, 0)         AS total_donated,
			COALESCE(d.total_donors, 0)          AS total_donors,
			COALESCE(i.total_income, 0)          AS total_income,
			COALESCE(x.total_expenses, 0)        AS total_expenses,
			COALESCE(en.total_envelopes, 0)      AS total_envelopes,
			COALESCE(en.envelopes_received, 0)   AS envelopes_received,
			COALESCE(en.total_envelope_amount, 0) AS total_envelope_amount
		FROM events e
		LEFT JOIN (
			SELECT event_id, SUM(amount) AS total_donated, COUNT(*) AS total_donors
			FROM donations GROUP BY event_id
		) d ON d.event_id = e.id
		LEFT JOIN (
			SELECT event_id, SUM(amount) AS total_income
			FROM incomes GROUP BY event_id
		) i ON i.event_id = e.id
		LEFT JOIN (
			SELECT event_id, SUM(amount) AS total_expenses
			FROM expenses GROUP BY event_id
		) x ON x.event_id = e.id
		LEFT JOIN (
			SELECT event_id,
				COUNT(*) AS total_envelopes,
				SUM(CASE WHEN status = 'received' THEN 1 ELSE 0 END) AS envelopes_received,
				SUM(CASE WHEN status = 'received' THEN amount ELSE 0 END) AS total_envelope_amount
			FROM envelopes GROUP BY event_id
		) en ON en.event_id = e.id
		WHERE e.id = ?
	`, id).Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get event summary: %w", err)
	}

	if summary.EventID.String() == "00000000-0000-0000-0000-000000000000" {
		return nil, fmt.Errorf("event not found with ID: %s", id)
	}

	return &summary, nil
}
