package services

import (
	"errors"
	"strings"
	"time"

	"donation-tracker-backend/internal/config"
	"donation-tracker-backend/internal/models"
	"donation-tracker-backend/internal/repositories"
	"donation-tracker-backend/internal/utils"
	"donation-tracker-backend/pkg/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type AuthService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewAuthService(repo *repositories.Repository, cfg *config.Config) *AuthService {
	return &AuthService{repo: repo, cfg: cfg}
}

// UserView is the merged credential+profile shape the API returns. Profile
// fields fall back to sensible defaults when no profile row exists yet.
type UserView struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Phone       string     `json:"phone"`
	Role        string     `json:"role"`
	EventID     *uuid.UUID `json:"event_id"`
	IsActive    bool       `json:"is_active"`
	HasProfile  bool       `json:"has_profile"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserView `json:"user"`
}

func (s *AuthService) Authenticate(email, password string) (*LoginResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.repo.UserRepo.GetUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := utils.CheckPassword(password, user.Password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  s.buildUserView(user),
	}, nil
}

type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
	Role        string
	EventID     *uuid.UUID
}

// Register creates the credential and then the profile row. When the profile
// insert fails the just-created credential is deleted again, so a half
// finished registration never leaves an orphaned login behind.
func (s *AuthService) Register(req RegisterRequest) (*UserView, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if existing, _ := s.repo.UserRepo.GetUserByEmail(email); existing != nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: hashedPassword,
	}
	if err := s.repo.UserRepo.CreateUser(user); err != nil {
		return nil, err
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = models.DefaultRole
	}

	profile := &models.UserProfile{
		ID:          user.ID,
		EventID:     req.EventID,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Role:        role,
		IsActive:    true,
	}
	if err := s.repo.UserRepo.UpsertProfile(profile); err != nil {
		// Compensate phase one so no credential exists without a profile.
		if delErr := s.repo.UserRepo.DeleteUser(user.ID.String()); delErr != nil {
			logger.WithField("user_id", user.ID).
				Error("failed to roll back credential after profile error: ", delErr)
		}
		return nil, err
	}

	return s.mergeView(user, profile), nil
}

// Me resolves the merged view for a token's subject.
func (s *AuthService) Me(userID string) (*UserView, error) {
	user, err := s.repo.UserRepo.GetUserByID(userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return s.buildUserView(user), nil
}

type UpdateProfileRequest struct {
	DisplayName *string
	Phone       *string
	Role        *string
	EventID     *uuid.UUID
}

// UpdateProfile upserts the caller's own profile with partial fields.
func (s *AuthService) UpdateProfile(userID string, req UpdateProfileRequest) (*models.UserProfile, error) {
	user, err := s.repo.UserRepo.GetUserByID(userID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	profile, err := s.repo.UserRepo.GetProfileByID(userID)
	if err != nil {
		profile = &models.UserProfile{
			ID:          user.ID,
			DisplayName: emailLocalPart(user.Email),
			Role:        models.DefaultRole,
			IsActive:    true,
		}
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Role != nil {
		profile.Role = *req.Role
	}
	if req.EventID != nil {
		profile.EventID = req.EventID
	}

	if err := s.repo.UserRepo.UpsertProfile(profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// ListUsers returns profile rows enriched with the credential's email, since
// profiles do not store emails locally.
func (s *AuthService) ListUsers(eventID string) ([]UserView, error) {
	profiles, err := s.repo.UserRepo.ListProfiles(eventID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	emailByID := make(map[uuid.UUID]string)
	users, err := s.repo.UserRepo.ListUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		emailByID[u.ID] = u.Email
	}

	views := make([]UserView, 0, len(profiles))
	for i := range profiles {
		p := profiles[i]
		views = append(views, UserView{
			ID:          p.ID,
			Email:       emailByID[p.ID],
			DisplayName: p.DisplayName,
			Phone:       p.Phone,
			Role:        p.Role,
			EventID:     p.EventID,
			IsActive:    p.IsActive,
			HasProfile:  true,
		})
	}

	return views, nil
}

// DeleteUser removes the profile and then the credential.
func (s *AuthService) DeleteUser(userID string) error {
	if err := s.repo.UserRepo.DeleteProfile(userID); err != nil {
		return err
	}
	return s.repo.UserRepo.DeleteUser(userID)
}

func (s *AuthService) buildUserView(user *models.User) *UserView {
	profile, err := s.repo.UserRepo.GetProfileByID(user.ID.String())
	if err != nil {
		return s.mergeView(user, nil)
	}
	return s.mergeView(user, profile)
}

func (s *AuthService) mergeView(user *models.User, profile *models.UserProfile) *UserView {
	view := &UserView{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: emailLocalPart(user.Email),
		Role:        models.DefaultRole,
		IsActive:    true,
	}

	if profile != nil {
		view.HasProfile = true
		view.Phone = profile.Phone
		view.EventID = profile.EventID
		view.IsActive = profile.IsActive
		if profile.DisplayName != "" {
			view.DisplayName = profile.DisplayName
		}
		if profile.Role != "" {
			view.Role = profile.Role
		}
	}

	return view
}

func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	if email != "" {
		return email
	}
	return "Admin"
}
