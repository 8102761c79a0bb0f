package services

import (
	"errors"
	"fmt"
	"time"

	"donation-tracker-backend/internal/config"
	"donation-tracker-backend/internal/models"
	"donation-tracker-backend/internal/realtime"
	"donation-tracker-backend/internal/repositories"
	"donation-tracker-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
)

type EventService struct {
	repo *repositories.Repository
	feed *realtime.Feed
	cfg  *config.Config
}

func NewEventService(repo *repositories.Repository, feed *realtime.Feed, cfg *config.Config) *EventService {
	return &EventService{repo: repo, feed: feed, cfg: cfg}
}

type CreateEventRequest struct {
	Name         string
	Description  string
	TargetAmount float64
	EventDate    *time.Time
	Location     string
}

func (s *EventService) CreateEvent(req CreateEventRequest) (*models.Event, error) {
	if req.Name == "" {
		return nil, errors.New("event name is required")
	}
	if req.TargetAmount < 0 {
		return nil, errors.New("target amount cannot be negative")
	}

	event := &models.Event{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		EventDate:    req.EventDate,
		Location:     req.Location,
		IsActive:     true,
	}

	if err := s.repo.EventRepo.CreateEvent(event); err != nil {
		return nil, err
	}

	return event, nil
}

type UpdateEventRequest struct {
	Name         *string
	Description  *string
	TargetAmount *float64
	EventDate    *time.Time
	Location     *string
	IsActive     *bool
}

func (s *EventService) UpdateEvent(id string, req UpdateEventRequest) (*models.Event, error) {
	event, err := s.repo.EventRepo.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.TargetAmount != nil {
		if *req.TargetAmount < 0 {
			return nil, errors.New("target amount cannot be negative")
		}
		event.TargetAmount = *req.TargetAmount
	}
	if req.EventDate != nil {
		event.EventDate = req.EventDate
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}

	if err := s.repo.EventRepo.UpdateEvent(event); err != nil {
		return nil, err
	}

	s.feed.Publish(realtime.Change{
		Table:   realtime.TableEvents,
		Op:      realtime.OpUpdate,
		EventID: event.ID,
		Row:     event,
	})

	return event, nil
}

func (s *EventService) ListEvents() ([]models.Event, error) {
	return s.repo.EventRepo.ListEvents()
}

func (s *EventService) GetEvent(id string) (*models.Event, error) {
	return s.repo.EventRepo.GetEventByID(id)
}

// GetSummary returns the aggregate snapshot with percent_reached derived
// from the net amount and the target.
func (s *EventService) GetSummary(id string) (*models.EventSummary, error) {
	summary, err := s.repo.EventRepo.GetEventSummary(id)
	if err != nil {
		return nil, err
	}

	summary.PercentReached = models.PercentReached(summary.Net(), summary.TargetAmount)
	return summary, nil
}

// EventStats carries the dashboard's today figures next to the summary.
type EventStats struct {
	EventID        uuid.UUID `json:"event_id"`
	TodayDonations int64     `json:"today_donations"`
	TodayAmount    float64   `json:"today_amount"`
}

func (s *EventService) GetStats(id string) (*EventStats, error) {
	event, err := s.repo.EventRepo.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	count, total, err := s.repo.DonationRepo.DonationStatsSince(id, now.BeginningOfDay())
	if err != nil {
		return nil, err
	}

	return &EventStats{
		EventID:        event.ID,
		TodayDonations: count,
		TodayAmount:    total,
	}, nil
}

// DonationQR renders the printable QR poster pointing at the event's public
// tally page.
func (s *EventService) DonationQR(id string, size int) ([]byte, error) {
	event, err := s.repo.EventRepo.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/?event=%s", s.cfg.PublicBaseURL, event.ID)
	return utils.GenerateQRCodePNG(link, size)
}
