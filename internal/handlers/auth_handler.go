package handlers

import (
	"donation-tracker-backend/internal/middleware"
	"donation-tracker-backend/internal/services"
	"donation-tracker-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	DisplayName string  `json:"display_name" validate:"required"`
	Phone       string  `json:"phone"`
	Role        string  `json:"role"`
	EventID     *string `json:"event_id" validate:"omitempty,uuid"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
	Role        *string `json:"role"`
	EventID     *string `json:"event_id" validate:"omitempty,uuid"`
}

// Login handles staff authentication
// @Summary Staff login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/login [post]
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	loginResp, err := h.authSvc.Authenticate(req.Email, req.Password)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	return utils.Success(c, loginResp, "Login successful")
}

// Logout acknowledges a logout. Tokens are stateless, the client just drops
// its copy.
func (h *Handler) Logout(c *fiber.Ctx) error {
	return utils.Success(c, nil, "Logged out")
}

// Me resolves the current user and profile
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/me [get]
func (h *Handler) Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	view, err := h.authSvc.Me(userID)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusNotFound)
	}

	return utils.Success(c, view, "User retrieved successfully")
}

// Register creates a new team member account (credential + profile)
// @Summary Register team member
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterUserRequest true "New member data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /auth/register [post]
func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	svcReq := services.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Role:        req.Role,
	}
	if req.EventID != nil {
		eventID, err := uuid.Parse(*req.EventID)
		if err != nil {
			return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
		}
		svcReq.EventID = &eventID
	}

	view, err := h.authSvc.Register(svcReq)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, view, "User registered successfully", fiber.StatusCreated)
}

// UpdateProfile upserts the caller's profile
// @Summary Update own profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /auth/profile [put]
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	svcReq := services.UpdateProfileRequest{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Role:        req.Role,
	}
	if req.EventID != nil {
		eventID, err := uuid.Parse(*req.EventID)
		if err != nil {
			return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
		}
		svcReq.EventID = &eventID
	}

	profile, err := h.authSvc.UpdateProfile(userID, svcReq)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, profile, "Profile updated successfully")
}

// ListUsers returns team member profiles with emails attached
// @Summary List team members
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Filter by event"
// @Success 200 {object} utils.Response
// @Router /auth/users [get]
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	views, err := h.authSvc.ListUsers(c.Query("event_id"))
	if err != nil {
		return utils.Error(c, "Failed to fetch users", fiber.StatusInternalServerError)
	}

	return utils.Success(c, views, "Users retrieved successfully")
}

// DeleteUser removes a team member's profile and credential
// @Summary Delete team member
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /auth/users/{id} [delete]
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	if _, err := uuid.Parse(userID); err != nil {
		return utils.Error(c, "Invalid user ID", fiber.StatusBadRequest)
	}

	if err := h.authSvc.DeleteUser(userID); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, nil, "User deleted successfully")
}
