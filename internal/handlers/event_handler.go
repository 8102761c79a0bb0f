package handlers

import (
	"strconv"
	"time"

	"donation-tracker-backend/internal/middleware"
	"donation-tracker-backend/internal/services"
	"donation-tracker-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	TargetAmount float64 `json:"target_amount" validate:"gte=0"`
	EventDate    string  `json:"event_date"`
	Location     string  `json:"location"`
}

type UpdateEventRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	TargetAmount *float64 `json:"target_amount" validate:"omitempty,gte=0"`
	EventDate    *string  `json:"event_date"`
	Location     *string  `json:"location"`
	IsActive     *bool    `json:"is_active"`
}

// CreateEvent creates a new campaign event
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "Event data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /events [post]
func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	svcReq := services.CreateEventRequest{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		Location:     req.Location,
	}
	if req.EventDate != "" {
		eventDate, err := time.Parse(time.RFC3339, req.EventDate)
		if err != nil {
			return utils.Error(c, "Invalid event_date format", fiber.StatusBadRequest)
		}
		svcReq.EventDate = &eventDate
	}

	event, err := h.eventSvc.CreateEvent(svcReq)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, event, "Event created successfully", fiber.StatusCreated)
}

// ListEvents returns all campaign events, newest first
// @Summary List events
// @Tags Events
// @Produce json
// @Success 200 {object} utils.Response
// @Router /events [get]
func (h *Handler) ListEvents(c *fiber.Ctx) error {
	events, err := h.eventSvc.ListEvents()
	if err != nil {
		return utils.Error(c, "Failed to fetch events", fiber.StatusInternalServerError)
	}

	return utils.Success(c, events, "Events retrieved successfully")
}

// GetEvent returns an event by ID
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /events/{id} [get]
func (h *Handler) GetEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	event, err := h.eventSvc.GetEvent(eventID)
	if err != nil {
		return utils.Error(c, "Event not found", fiber.StatusNotFound)
	}

	return utils.Success(c, event, "Event retrieved successfully")
}

// UpdateEvent applies a partial update to an event
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body UpdateEventRequest true "Event fields"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /events/{id} [put]
func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	var req UpdateEventRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	svcReq := services.UpdateEventRequest{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		Location:     req.Location,
		IsActive:     req.IsActive,
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse(time.RFC3339, *req.EventDate)
		if err != nil {
			return utils.Error(c, "Invalid event_date format", fiber.StatusBadRequest)
		}
		svcReq.EventDate = &eventDate
	}

	event, err := h.eventSvc.UpdateEvent(eventID, svcReq)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	return utils.Success(c, event, "Event updated successfully")
}

// GetEventSummary returns the aggregate donation snapshot
// @Summary Event summary
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /events/{id}/summary [get]
func (h *Handler) GetEventSummary(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	summary, err := h.eventSvc.GetSummary(eventID)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	return utils.Success(c, summary, "Summary retrieved successfully")
}

// GetEventStats returns today's donation figures for the dashboard
// @Summary Event stats
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /events/{id}/stats [get]
func (h *Handler) GetEventStats(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	stats, err := h.eventSvc.GetStats(eventID)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	return utils.Success(c, stats, "Stats retrieved successfully")
}

// GetEventQRCode renders the printable donation poster QR
// @Summary Event QR code
// @Tags Events
// @Produce png
// @Param id path string true "Event ID"
// @Param size query int false "Image size in pixels" default(256)
// @Success 200 {file} binary
// @Failure 404 {object} utils.Response
// @Router /events/{id}/qrcode [get]
func (h *Handler) GetEventQRCode(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	size, _ := strconv.Atoi(c.Query("size", "256"))

	png, err := h.eventSvc.DonationQR(eventID, size)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
