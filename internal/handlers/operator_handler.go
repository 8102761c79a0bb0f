package handlers

import (
	"donation-tracker-backend/internal/middleware"
	"donation-tracker-backend/internal/services"
	"donation-tracker-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateOperatorRequest struct {
	EventID string `json:"event_id" validate:"required,uuid"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Role    string `json:"role"`
}

type UpdateOperatorRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// ListOperators returns route staff, ordered by name
// @Summary List operators
// @Tags Operators
// @Produce json
// @Param event_id query string false "Filter by event"
// @Success 200 {object} utils.Response
// @Router /operators [get]
func (h *Handler) ListOperators(c *fiber.Ctx) error {
	operators, err := h.operatorSvc.ListOperators(c.Query("event_id"))
	if err != nil {
		return utils.Error(c, "Failed to fetch operators", fiber.StatusInternalServerError)
	}

	return utils.Success(c, operators, "Operators retrieved successfully")
}

// CreateOperator adds a route staff member
// @Summary Create operator
// @Tags Operators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOperatorRequest true "Operator data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /operators [post]
func (h *Handler) CreateOperator(c *fiber.Ctx) error {
	var req CreateOperatorRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	operator, err := h.operatorSvc.CreateOperator(services.CreateOperatorRequest{
		EventID: eventID,
		Name:    req.Name,
		Phone:   req.Phone,
		Role:    req.Role,
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, operator, "Operator created successfully", fiber.StatusCreated)
}

// UpdateOperator applies a partial update
// @Summary Update operator
// @Tags Operators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Operator ID"
// @Param request body UpdateOperatorRequest true "Operator fields"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /operators/{id} [put]
func (h *Handler) UpdateOperator(c *fiber.Ctx) error {
	operatorID := c.Params("id")
	if _, err := uuid.Parse(operatorID); err != nil {
		return utils.Error(c, "Invalid operator ID", fiber.StatusBadRequest)
	}

	var req UpdateOperatorRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	operator, err := h.operatorSvc.UpdateOperator(operatorID, services.UpdateOperatorRequest{
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	return utils.Success(c, operator, "Operator updated successfully")
}

// DeleteOperator removes a route staff member
// @Summary Delete operator
// @Tags Operators
// @Produce json
// @Security BearerAuth
// @Param id path string true "Operator ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /operators/{id} [delete]
func (h *Handler) DeleteOperator(c *fiber.Ctx) error {
	operatorID := c.Params("id")
	if _, err := uuid.Parse(operatorID); err != nil {
		return utils.Error(c, "Invalid operator ID", fiber.StatusBadRequest)
	}

	if err := h.operatorSvc.DeleteOperator(operatorID); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	return utils.Success(c, nil, "Operator deleted successfully")
}
