package handlers

import (
	"time"

	"donation-tracker-backend/internal/config"
	"donation-tracker-backend/internal/middleware"
	"donation-tracker-backend/internal/realtime"
	"donation-tracker-backend/internal/services"
	"donation-tracker-backend/internal/utils"
	"donation-tracker-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	authSvc     *services.AuthService
	eventSvc    *services.EventService
	donationSvc *services.DonationService
	envelopeSvc *services.EnvelopeService
	ledgerSvc   *services.LedgerService
	operatorSvc *services.OperatorService
	feed        *realtime.Feed
	cfg         *config.Config
}

func NewHandler(
	authSvc *services.AuthService,
	eventSvc *services.EventService,
	donationSvc *services.DonationService,
	envelopeSvc *services.EnvelopeService,
	ledgerSvc *services.LedgerService,
	operatorSvc *services.OperatorService,
	feed *realtime.Feed,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authSvc:     authSvc,
		eventSvc:    eventSvc,
		donationSvc: donationSvc,
		envelopeSvc: envelopeSvc,
		ledgerSvc:   ledgerSvc,
		operatorSvc: operatorSvc,
		feed:        feed,
		cfg:         cfg,
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	jwt := middleware.JWTMiddleware(h.cfg)

	// Auth
	auth := router.Group("/auth")
	{
		auth.Post("/login", h.Login)
		auth.Post("/logout", h.Logout)
		auth.Get("/me", jwt, h.Me)
		auth.Post("/register", jwt, h.Register)
		auth.Put("/profile", jwt, h.UpdateProfile)
		auth.Get("/users", jwt, h.ListUsers)
		auth.Delete("/users/:id", jwt, h.DeleteUser)
	}

	// Events. Reads are public so the tally page works without a login.
	events := router.Group("/events")
	{
		events.Get("/", h.ListEvents)
		events.Get("/:id", h.GetEvent)
		events.Get("/:id/summary", h.GetEventSummary)
		events.Get("/:id/qrcode", h.GetEventQRCode)
		events.Get("/:id/stream", h.StreamEventChanges)
		events.Get("/:id/stats", jwt, h.GetEventStats)
		events.Post("/", jwt, h.CreateEvent)
		events.Put("/:id", jwt, h.UpdateEvent)
	}

	// Donations
	donations := router.Group("/donations")
	{
		donations.Get("/", h.ListDonations)
		donations.Get("/recent", h.ListRecentDonations)
		donations.Post("/", jwt, h.CreateDonation)
		donations.Delete("/:id", jwt, h.DeleteDonation)
	}

	// Envelopes
	envelopes := router.Group("/envelopes")
	{
		envelopes.Get("/", h.ListEnvelopes)
		envelopes.Post("/", jwt, h.CreateEnvelope)
		envelopes.Post("/bulk", jwt, h.BulkCreateEnvelopes)
		envelopes.Put("/:id", jwt, h.UpdateEnvelope)
		envelopes.Delete("/:id", jwt, h.DeleteEnvelope)
	}

	// Income / Expenses
	income := router.Group("/income")
	{
		income.Get("/", h.ListIncome)
		income.Post("/", jwt, h.CreateIncome)
		income.Delete("/:id", jwt, h.DeleteIncome)
	}
	expenses := router.Group("/expenses")
	{
		expenses.Get("/", h.ListExpenses)
		expenses.Post("/", jwt, h.CreateExpense)
		expenses.Delete("/:id", jwt, h.DeleteExpense)
	}

	// Operators
	operators := router.Group("/operators")
	{
		operators.Get("/", h.ListOperators)
		operators.Post("/", jwt, h.CreateOperator)
		operators.Put("/:id", jwt, h.UpdateOperator)
		operators.Delete("/:id", jwt, h.DeleteOperator)
	}

	// Health check
	router.Get("/health", h.Health)
}

// Health is the liveness probe
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorHandler handles global errors
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		logger.WithField("path", c.Path()).Error("internal error: ", err)
	}

	return utils.Error(c, message, code)
}
