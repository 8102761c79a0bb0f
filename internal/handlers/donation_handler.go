package handlers

import (
	"strconv"

	"donation-tracker-backend/internal/middleware"
	"donation-tracker-backend/internal/services"
	"donation-tracker-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateDonationRequest struct {
	EventID      string  `json:"event_id" validate:"required,uuid"`
	DonorName    string  `json:"donor_name" validate:"required"`
	DonorPhone   string  `json:"donor_phone"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Note         string  `json:"note"`
	DonationType string  `json:"donation_type" validate:"omitempty,oneof=cash transfer other"`
	IsAnonymous  bool    `json:"is_anonymous"`
	ProcessedBy  string  `json:"processed_by"`
}

// CreateDonation records a donation
// @Summary Record donation
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDonationRequest true "Donation data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /donations [post]
func (h *Handler) CreateDonation(c *fiber.Ctx) error {
	var req CreateDonationRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	donation, err := h.donationSvc.CreateDonation(services.CreateDonationRequest{
		EventID:      eventID,
		DonorName:    req.DonorName,
		DonorPhone:   req.DonorPhone,
		Amount:       req.Amount,
		Note:         req.Note,
		DonationType: req.DonationType,
		IsAnonymous:  req.IsAnonymous,
		ProcessedBy:  req.ProcessedBy,
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, donation, "Donation recorded successfully", fiber.StatusCreated)
}

// ListDonations returns the donation ledger, newest first
// @Summary List donations
// @Tags Donations
// @Produce json
// @Param event_id query string false "Filter by event"
// @Success 200 {object} utils.Response
// @Router /donations [get]
func (h *Handler) ListDonations(c *fiber.Ctx) error {
	donations, err := h.donationSvc.ListDonations(c.Query("event_id"))
	if err != nil {
		return utils.Error(c, "Failed to fetch donations", fiber.StatusInternalServerError)
	}

	return utils.Success(c, donations, "Donations retrieved successfully")
}

// ListRecentDonations returns the latest donations for the ticker
// @Summary Recent donations
// @Tags Donations
// @Produce json
// @Param event_id query string false "Filter by event"
// @Param limit query int false "Max rows" default(10)
// @Success 200 {object} utils.Response
// @Router /donations/recent [get]
func (h *Handler) ListRecentDonations(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	donations, err := h.donationSvc.ListRecentDonations(c.Query("event_id"), limit)
	if err != nil {
		return utils.Error(c, "Failed to fetch donations", fiber.StatusInternalServerError)
	}

	return utils.Success(c, donations, "Donations retrieved successfully")
}

// DeleteDonation removes a donation row
// @Summary Delete donation
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /donations/{id} [delete]
func (h *Handler) DeleteDonation(c *fiber.Ctx) error {
	donationID := c.Params("id")
	if _, err := uuid.Parse(donationID); err != nil {
		return utils.Error(c, "Invalid donation ID", fiber.StatusBadRequest)
	}

	if err := h.donationSvc.DeleteDonation(donationID); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	return utils.Success(c, nil, "Donation deleted successfully")
}
