package services

import (
	"errors"
	"testing"

	"donation-tracker-backend/internal/models"
	"donation-tracker-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()

	repo := testRepo()
	userRepo := newFakeUserRepo()
	repo.UserRepo = userRepo
	return NewAuthService(repo, testConfig()), userRepo
}

func seedUser(t *testing.T, userRepo *fakeUserRepo, email, password string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: email, Password: hash}
	require.NoError(t, userRepo.CreateUser(user))
	return user
}

func TestAuthenticateIssuesToken(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	user := seedUser(t, userRepo, "staff@temple.org", "secret1")

	resp, err := svc.Authenticate("Staff@Temple.org", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "staff@temple.org", claims["email"])
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	seedUser(t, userRepo, "staff@temple.org", "secret1")

	_, err := svc.Authenticate("staff@temple.org", "wrong")
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Authenticate("nobody@temple.org", "secret1")
	assert.EqualError(t, err, "invalid credentials")
}

func TestAuthenticateFallbacksWithoutProfile(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	seedUser(t, userRepo, "somsak@temple.org", "secret1")

	resp, err := svc.Authenticate("somsak@temple.org", "secret1")
	require.NoError(t, err)

	// no profile row yet: display name from the email, default role
	assert.Equal(t, "somsak", resp.User.DisplayName)
	assert.Equal(t, models.DefaultRole, resp.User.Role)
	assert.False(t, resp.User.HasProfile)
}

func TestRegisterCreatesCredentialAndProfile(t *testing.T) {
	svc, userRepo := newAuthFixture(t)

	eventID := uuid.New()
	view, err := svc.Register(RegisterRequest{
		Email:       "New@Temple.org",
		Password:    "secret1",
		DisplayName: "พี่ใหม่",
		EventID:     &eventID,
	})
	require.NoError(t, err)

	assert.Equal(t, "new@temple.org", view.Email)
	assert.Equal(t, "พี่ใหม่", view.DisplayName)
	assert.Equal(t, models.DefaultRole, view.Role)
	assert.True(t, view.HasProfile)

	profile, err := userRepo.GetProfileByID(view.ID.String())
	require.NoError(t, err)
	assert.Equal(t, eventID, *profile.EventID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	seedUser(t, userRepo, "taken@temple.org", "secret1")

	_, err := svc.Register(RegisterRequest{Email: "taken@temple.org", Password: "secret1"})
	assert.EqualError(t, err, "email already registered")
}

func TestRegisterRollsBackCredentialOnProfileFailure(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	userRepo.upsertProfile = func(*models.UserProfile) error {
		return errors.New("profile insert failed")
	}

	_, err := svc.Register(RegisterRequest{Email: "half@temple.org", Password: "secret1"})
	require.Error(t, err)

	// the phase-one credential must be gone again
	_, err = userRepo.GetUserByEmail("half@temple.org")
	assert.Error(t, err)
	assert.Len(t, userRepo.deletedUserIDs, 1)
}

func TestUpdateProfileCreatesMissingRow(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	user := seedUser(t, userRepo, "somsri@temple.org", "secret1")

	phone := "0812345678"
	profile, err := svc.UpdateProfile(user.ID.String(), UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "somsri", profile.DisplayName)
	assert.Equal(t, phone, profile.Phone)
	assert.Equal(t, models.DefaultRole, profile.Role)
}

func TestListUsersEnrichesEmails(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	user := seedUser(t, userRepo, "lead@temple.org", "secret1")
	require.NoError(t, userRepo.UpsertProfile(&models.UserProfile{
		ID:          user.ID,
		DisplayName: "หัวหน้าสาย",
		Role:        "หัวหน้า",
		IsActive:    true,
	}))

	views, err := svc.ListUsers("")
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Equal(t, "lead@temple.org", views[0].Email)
	assert.Equal(t, "หัวหน้าสาย", views[0].DisplayName)
	assert.Equal(t, "หัวหน้า", views[0].Role)
}

func TestDeleteUserRemovesProfileFirst(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	user := seedUser(t, userRepo, "gone@temple.org", "secret1")
	require.NoError(t, userRepo.UpsertProfile(&models.UserProfile{ID: user.ID, DisplayName: "x"}))

	require.NoError(t, svc.DeleteUser(user.ID.String()))

	assert.Equal(t, []string{user.ID.String()}, userRepo.deletedProfiles)
	assert.Equal(t, []string{user.ID.String()}, userRepo.deletedUserIDs)
}
