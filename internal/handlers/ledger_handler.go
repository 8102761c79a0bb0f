package handlers

import (
	"time"

	"donation-tracker-backend/internal/middleware"
	"donation-tracker-backend/internal/services"
	"donation-tracker-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateLedgerEntryRequest struct {
	EventID     string  `json:"event_id" validate:"required,uuid"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Date        string  `json:"date"`
	ReceiptNo   string  `json:"receipt_no"`
	ProcessedBy string  `json:"processed_by"`
}

func (h *Handler) parseLedgerRequest(c *fiber.Ctx) (*services.CreateLedgerEntryRequest, error) {
	var req CreateLedgerEntryRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return nil, err
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid event ID")
	}

	svcReq := &services.CreateLedgerEntryRequest{
		EventID:     eventID,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		ReceiptNo:   req.ReceiptNo,
		ProcessedBy: req.ProcessedBy,
	}
	if req.Date != "" {
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid date format")
		}
		svcReq.Date = &date
	}

	return svcReq, nil
}

// CreateIncome records a miscellaneous income entry
// @Summary Record income
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLedgerEntryRequest true "Income data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /income [post]
func (h *Handler) CreateIncome(c *fiber.Ctx) error {
	svcReq, err := h.parseLedgerRequest(c)
	if err != nil {
		return err
	}

	income, err := h.ledgerSvc.CreateIncome(*svcReq)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, income, "Income recorded successfully", fiber.StatusCreated)
}

// ListIncome returns income entries, newest first
// @Summary List income
// @Tags Ledger
// @Produce json
// @Param event_id query string false "Filter by event"
// @Success 200 {object} utils.Response
// @Router /income [get]
func (h *Handler) ListIncome(c *fiber.Ctx) error {
	items, err := h.ledgerSvc.ListIncome(c.Query("event_id"))
	if err != nil {
		return utils.Error(c, "Failed to fetch income", fiber.StatusInternalServerError)
	}

	return utils.Success(c, items, "Income retrieved successfully")
}

// DeleteIncome removes an income entry
// @Summary Delete income
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "Income ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /income/{id} [delete]
func (h *Handler) DeleteIncome(c *fiber.Ctx) error {
	incomeID := c.Params("id")
	if _, err := uuid.Parse(incomeID); err != nil {
		return utils.Error(c, "Invalid income ID", fiber.StatusBadRequest)
	}

	if err := h.ledgerSvc.DeleteIncome(incomeID); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	return utils.Success(c, nil, "Income deleted successfully")
}

// CreateExpense records an expense entry
// @Summary Record expense
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLedgerEntryRequest true "Expense data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /expenses [post]
func (h *Handler) CreateExpense(c *fiber.Ctx) error {
	svcReq, err := h.parseLedgerRequest(c)
	if err != nil {
		return err
	}

	expense, err := h.ledgerSvc.CreateExpense(*svcReq)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, expense, "Expense recorded successfully", fiber.StatusCreated)
}

// ListExpenses returns expense entries, newest first
// @Summary List expenses
// @Tags Ledger
// @Produce json
// @Param event_id query string false "Filter by event"
// @Success 200 {object} utils.Response
// @Router /expenses [get]
func (h *Handler) ListExpenses(c *fiber.Ctx) error {
	items, err := h.ledgerSvc.ListExpenses(c.Query("event_id"))
	if err != nil {
		return utils.Error(c, "Failed to fetch expenses", fiber.StatusInternalServerError)
	}

	return utils.Success(c, items, "Expenses retrieved successfully")
}

// DeleteExpense removes an expense entry
// @Summary Delete expense
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /expenses/{id} [delete]
func (h *Handler) DeleteExpense(c *fiber.Ctx) error {
	expenseID := c.Params("id")
	if _, err := uuid.Parse(expenseID); err != nil {
		return utils.Error(c, "Invalid expense ID", fiber.StatusBadRequest)
	}

	if err := h.ledgerSvc.DeleteExpense(expenseID); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	return utils.Success(c, nil, "Expense deleted successfully")
}
