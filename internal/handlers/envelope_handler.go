package handlers

import (
	"donation-tracker-backend/internal/middleware"
	"donation-tracker-backend/internal/services"
	"donation-tracker-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateEnvelopeRequest struct {
	EventID    string  `json:"event_id" validate:"required,uuid"`
	RouteName  string  `json:"route_name"`
	EnvelopeNo string  `json:"envelope_no" validate:"required"`
	DonorName  string  `json:"donor_name"`
	DonorPhone string  `json:"donor_phone"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	Status     string  `json:"status" validate:"omitempty,oneof=pending received returned"`
	Note       string  `json:"note"`
}

type BulkCreateEnvelopesRequest struct {
	EventID   string `json:"event_id" validate:"required,uuid"`
	RouteName string `json:"route_name"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	StartNo   int    `json:"start_no" validate:"omitempty,gte=1"`
	Prefix    string `json:"prefix"`
}

type UpdateEnvelopeRequest struct {
	RouteName   *string  `json:"route_name"`
	EnvelopeNo  *string  `json:"envelope_no"`
	DonorName   *string  `json:"donor_name"`
	DonorPhone  *string  `json:"donor_phone"`
	Amount      *float64 `json:"amount" validate:"omitempty,gte=0"`
	PaymentType *string  `json:"payment_type" validate:"omitempty,oneof=cash transfer"`
	Status      *string  `json:"status" validate:"omitempty,oneof=pending received returned"`
	Note        *string  `json:"note"`
	ProcessedBy *string  `json:"processed_by"`
}

// ListEnvelopes returns envelopes ordered by route then number
// @Summary List envelopes
// @Tags Envelopes
// @Produce json
// @Param event_id query string false "Filter by event"
// @Success 200 {object} utils.Response
// @Router /envelopes [get]
func (h *Handler) ListEnvelopes(c *fiber.Ctx) error {
	envelopes, err := h.envelopeSvc.ListEnvelopes(c.Query("event_id"))
	if err != nil {
		return utils.Error(c, "Failed to fetch envelopes", fiber.StatusInternalServerError)
	}

	return utils.Success(c, envelopes, "Envelopes retrieved successfully")
}

// CreateEnvelope registers a single envelope
// @Summary Create envelope
// @Tags Envelopes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEnvelopeRequest true "Envelope data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /envelopes [post]
func (h *Handler) CreateEnvelope(c *fiber.Ctx) error {
	var req CreateEnvelopeRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	envelope, err := h.envelopeSvc.CreateEnvelope(services.CreateEnvelopeRequest{
		EventID:    eventID,
		RouteName:  req.RouteName,
		EnvelopeNo: req.EnvelopeNo,
		DonorName:  req.DonorName,
		DonorPhone: req.DonorPhone,
		Amount:     req.Amount,
		Status:     req.Status,
		Note:       req.Note,
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, envelope, "Envelope created successfully", fiber.StatusCreated)
}

// BulkCreateEnvelopes generates a numbered batch of pending envelopes
// @Summary Bulk create envelopes
// @Tags Envelopes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkCreateEnvelopesRequest true "Batch parameters"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /envelopes/bulk [post]
func (h *Handler) BulkCreateEnvelopes(c *fiber.Ctx) error {
	var req BulkCreateEnvelopesRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	result, err := h.envelopeSvc.BulkCreate(services.BulkCreateRequest{
		EventID:   eventID,
		RouteName: req.RouteName,
		Quantity:  req.Quantity,
		StartNo:   req.StartNo,
		Prefix:    req.Prefix,
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, result, "Envelopes created successfully", fiber.StatusCreated)
}

// UpdateEnvelope applies a partial update, including status transitions
// @Summary Update envelope
// @Tags Envelopes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Envelope ID"
// @Param request body UpdateEnvelopeRequest true "Envelope fields"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /envelopes/{id} [put]
func (h *Handler) UpdateEnvelope(c *fiber.Ctx) error {
	envelopeID := c.Params("id")
	if _, err := uuid.Parse(envelopeID); err != nil {
		return utils.Error(c, "Invalid envelope ID", fiber.StatusBadRequest)
	}

	var req UpdateEnvelopeRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	envelope, err := h.envelopeSvc.UpdateEnvelope(envelopeID, services.UpdateEnvelopeRequest{
		RouteName:   req.RouteName,
		EnvelopeNo:  req.EnvelopeNo,
		DonorName:   req.DonorName,
		DonorPhone:  req.DonorPhone,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Status:      req.Status,
		Note:        req.Note,
		ProcessedBy: req.ProcessedBy,
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, envelope, "Envelope updated successfully")
}

// DeleteEnvelope removes an envelope row
// @Summary Delete envelope
// @Tags Envelopes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Envelope ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /envelopes/{id} [delete]
func (h *Handler) DeleteEnvelope(c *fiber.Ctx) error {
	envelopeID := c.Params("id")
	if _, err := uuid.Parse(envelopeID); err != nil {
		return utils.Error(c, "Invalid envelope ID", fiber.StatusBadRequest)
	}

	if err := h.envelopeSvc.DeleteEnvelope(envelopeID); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	return utils.Success(c, nil, "Envelope deleted successfully")
}
