package services

import (
	"errors"

	"donation-tracker-backend/internal/config"
	"donation-tracker-backend/internal/models"
	"donation-tracker-backend/internal/realtime"
	"donation-tracker-backend/internal/repositories"

	"github.com/google/uuid"
)

type DonationService struct {
	repo *repositories.Repository
	feed *realtime.Feed
	cfg  *config.Config
}

func NewDonationService(repo *repositories.Repository, feed *realtime.Feed, cfg *config.Config) *DonationService {
	return &DonationService{repo: repo, feed: feed, cfg: cfg}
}

type CreateDonationRequest struct {
	EventID      uuid.UUID
	DonorName    string
	DonorPhone   string
	Amount       float64
	Note         string
	DonationType string
	IsAnonymous  bool
	ProcessedBy  string
}

func (s *DonationService) CreateDonation(req CreateDonationRequest) (*models.Donation, error) {
	if req.DonorName == "" {
		return nil, errors.New("donor name is required")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}

	donationType := req.DonationType
	if donationType == "" {
		donationType = models.DonationTypeCash
	}
	switch donationType {
	case models.DonationTypeCash, models.DonationTypeTransfer, models.DonationTypeOther:
	default:
		return nil, errors.New("donation type must be cash, transfer, or other")
	}

	// Verify event exists
	event, err := s.repo.EventRepo.GetEventByID(req.EventID.String())
	if err != nil {
		return nil, errors.New("event not found")
	}

	donation := &models.Donation{
		ID:           uuid.New(),
		EventID:      event.ID,
		DonorName:    req.DonorName,
		DonorPhone:   req.DonorPhone,
		Amount:       req.Amount,
		Note:         req.Note,
		DonationType: donationType,
		IsAnonymous:  req.IsAnonymous,
		ProcessedBy:  req.ProcessedBy,
	}

	if err := s.repo.DonationRepo.CreateDonation(donation); err != nil {
		return nil, err
	}

	s.feed.Publish(realtime.Change{
		Table:   realtime.TableDonations,
		Op:      realtime.OpInsert,
		EventID: donation.EventID,
		Row:     donation,
	})

	return donation, nil
}

func (s *DonationService) ListDonations(eventID string) ([]models.Donation, error) {
	return s.repo.DonationRepo.ListDonations(eventID)
}

func (s *DonationService) ListRecentDonations(eventID string, limit int) ([]models.Donation, error) {
	return s.repo.DonationRepo.ListRecentDonations(eventID, limit)
}

func (s *DonationService) DeleteDonation(id string) error {
	donation, err := s.repo.DonationRepo.GetDonationByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.DonationRepo.DeleteDonation(id); err != nil {
		return err
	}

	s.feed.Publish(realtime.Change{
		Table:   realtime.TableDonations,
		Op:      realtime.OpDelete,
		EventID: donation.EventID,
		Row:     donation,
	})

	return nil
}
