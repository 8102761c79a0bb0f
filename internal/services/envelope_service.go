package services

import (
	"errors"
	"fmt"

	"donation-tracker-backend/internal/config"
	"donation-tracker-backend/internal/models"
	"donation-tracker-backend/internal/realtime"
	"donation-tracker-backend/internal/repositories"

	"github.com/google/uuid"
)

type EnvelopeService struct {
	repo *repositories.Repository
	feed *realtime.Feed
	cfg  *config.Config
}

func NewEnvelopeService(repo *repositories.Repository, feed *realtime.Feed, cfg *config.Config) *EnvelopeService {
	return &EnvelopeService{repo: repo, feed: feed, cfg: cfg}
}

type CreateEnvelopeRequest struct {
	EventID    uuid.UUID
	RouteName  string
	EnvelopeNo string
	DonorName  string
	DonorPhone string
	Amount     float64
	Status     string
	Note       string
}

func (s *EnvelopeService) CreateEnvelope(req CreateEnvelopeRequest) (*models.Envelope, error) {
	if req.EnvelopeNo == "" {
		return nil, errors.New("envelope number is required")
	}

	if _, err := s.repo.EventRepo.GetEventByID(req.EventID.String()); err != nil {
		return nil, errors.New("event not found")
	}

	routeName := req.RouteName
	if routeName == "" {
		routeName = models.DefaultRouteName
	}
	status := req.Status
	if status == "" {
		status = models.EnvelopeStatusPending
	}
	if !validEnvelopeStatus(status) {
		return nil, errors.New("status must be pending, received, or returned")
	}

	envelope := &models.Envelope{
		ID:         uuid.New(),
		EventID:    req.EventID,
		RouteName:  routeName,
		EnvelopeNo: req.EnvelopeNo,
		DonorName:  req.DonorName,
		DonorPhone: req.DonorPhone,
		Amount:     req.Amount,
		Status:     status,
		Note:       req.Note,
	}

	if err := s.repo.EnvelopeRepo.CreateEnvelope(envelope); err != nil {
		return nil, err
	}

	s.publish(realtime.OpInsert, envelope)
	return envelope, nil
}

type BulkCreateRequest struct {
	EventID   uuid.UUID
	RouteName string
	Quantity  int
	StartNo   int
	Prefix    string
}

type BulkCreateResult struct {
	Created   int               `json:"created"`
	Envelopes []models.Envelope `json:"envelopes"`
}

// BulkCreate generates quantity pending placeholder envelopes numbered
// prefix + zero-padded(start_no + i, width 3) in ascending order.
func (s *EnvelopeService) BulkCreate(req BulkCreateRequest) (*BulkCreateResult, error) {
	if req.Quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}

	if _, err := s.repo.EventRepo.GetEventByID(req.EventID.String()); err != nil {
		return nil, errors.New("event not found")
	}

	routeName := req.RouteName
	if routeName == "" {
		routeName = models.DefaultRouteName
	}
	startNo := req.StartNo
	if startNo <= 0 {
		startNo = 1
	}

	envelopes := make([]*models.Envelope, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		envelopes = append(envelopes, &models.Envelope{
			ID:         uuid.New(),
			EventID:    req.EventID,
			RouteName:  routeName,
			EnvelopeNo: fmt.Sprintf("%s%03d", req.Prefix, startNo+i),
			Amount:     0,
			Status:     models.EnvelopeStatusPending,
		})
	}

	if err := s.repo.EnvelopeRepo.CreateEnvelopes(envelopes); err != nil {
		return nil, err
	}

	result := &BulkCreateResult{
		Created:   len(envelopes),
		Envelopes: make([]models.Envelope, 0, len(envelopes)),
	}
	for _, env := range envelopes {
		result.Envelopes = append(result.Envelopes, *env)
		s.publish(realtime.OpInsert, env)
	}

	return result, nil
}

type UpdateEnvelopeRequest struct {
	RouteName   *string
	EnvelopeNo  *string
	DonorName   *string
	DonorPhone  *string
	Amount      *float64
	PaymentType *string
	Status      *string
	Note        *string
	ProcessedBy *string
}

// UpdateEnvelope applies a partial update. Moving an envelope out of the
// received state resets its amount and clears the payment type; the received
// state itself accepts whatever amount was supplied, including zero.
func (s *EnvelopeService) UpdateEnvelope(id string, req UpdateEnvelopeRequest) (*models.Envelope, error) {
	envelope, err := s.repo.EnvelopeRepo.GetEnvelopeByID(id)
	if err != nil {
		return nil, err
	}

	if req.RouteName != nil {
		envelope.RouteName = *req.RouteName
	}
	if req.EnvelopeNo != nil {
		envelope.EnvelopeNo = *req.EnvelopeNo
	}
	if req.DonorName != nil {
		envelope.DonorName = *req.DonorName
	}
	if req.DonorPhone != nil {
		envelope.DonorPhone = *req.DonorPhone
	}
	if req.Amount != nil {
		envelope.Amount = *req.Amount
	}
	if req.PaymentType != nil {
		envelope.PaymentType = *req.PaymentType
	}
	if req.Note != nil {
		envelope.Note = *req.Note
	}
	if req.ProcessedBy != nil {
		envelope.ProcessedBy = *req.ProcessedBy
	}

	if req.Status != nil {
		status := *req.Status
		if !validEnvelopeStatus(status) {
			return nil, errors.New("status must be pending, received, or returned")
		}
		envelope.Status = status

		// pending and returned are empty-handed states
		if status == models.EnvelopeStatusPending || status == models.EnvelopeStatusReturned {
			envelope.Amount = 0
			envelope.PaymentType = ""
		}
	}

	if err := s.repo.EnvelopeRepo.UpdateEnvelope(envelope); err != nil {
		return nil, err
	}

	s.publish(realtime.OpUpdate, envelope)
	return envelope, nil
}

func (s *EnvelopeService) ListEnvelopes(eventID string) ([]models.Envelope, error) {
	return s.repo.EnvelopeRepo.ListEnvelopes(eventID)
}

func (s *EnvelopeService) DeleteEnvelope(id string) error {
	envelope, err := s.repo.EnvelopeRepo.GetEnvelopeByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.EnvelopeRepo.DeleteEnvelope(id); err != nil {
		return err
	}

	s.publish(realtime.OpDelete, envelope)
	return nil
}

func (s *EnvelopeService) publish(op realtime.Operation, envelope *models.Envelope) {
	s.feed.Publish(realtime.Change{
		Table:   realtime.TableEnvelopes,
		Op:      op,
		EventID: envelope.EventID,
		Row:     envelope,
	})
}

func validEnvelopeStatus(status string) bool {
	switch status {
	case models.EnvelopeStatusPending, models.EnvelopeStatusReceived, models.EnvelopeStatusReturned:
		return true
	}
	return false
}
