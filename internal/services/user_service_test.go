package services

import (
	"bytes"
	"testing"

	"invoice-service/internal/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService() *UserService {
	svc := NewUserService(newFakeUserRepo(), NewJWTService("test-secret"), NewMemoryBlacklist())
	svc.hashCost = bcrypt.MinCost
	return svc
}

func signup(t *testing.T, svc *UserService, email string, role models.Role) *models.User {
	t.Helper()
	user, err := svc.Signup(t.Context(), models.SignupRequest{
		Name:     "Test User",
		Email:    email,
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestSignup_FirstAdminThenStaff(t *testing.T) {
	svc := newTestUserService()

	first := signup(t, svc, "owner@example.com", models.RoleAdmin)
	second := signup(t, svc, "clerk@example.com", models.RoleAdmin)

	assert.Equal(t, models.RoleAdmin, first.Role)
	assert.Equal(t, models.RoleStaff, second.Role)
	assert.NotEqual(t, "secret123", first.PasswordHash)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := newTestUserService()
	signup(t, svc, "owner@example.com", "")

	_, err := svc.Signup(t.Context(), models.SignupRequest{Name: "x", Email: "owner@example.com", Password: "secret123"})

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "This email is already used", MessageOf(err))
}

func TestLogin_AuthenticateLogout(t *testing.T) {
	svc := newTestUserService()
	user := signup(t, svc, "owner@example.com", models.RoleAdmin)

	resp, err := svc.Login(t.Context(), models.LoginRequest{Email: "owner@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := svc.Authenticate(t.Context(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	require.NoError(t, svc.Logout(t.Context(), claims))

	_, err = svc.Authenticate(t.Context(), resp.Token)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestLoginLogout_LogUserID(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	svc := newTestUserService()
	user := signup(t, svc, "owner@example.com", models.RoleAdmin)

	resp, err := svc.Login(t.Context(), models.LoginRequest{Email: "owner@example.com", Password: "secret123"})
	require.NoError(t, err)
	claims, err := svc.Authenticate(t.Context(), resp.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(t.Context(), claims))

	out := buf.String()
	assert.Contains(t, out, `"user_id":"`+user.ID+`"`)
	assert.Contains(t, out, "user logged in")
	assert.Contains(t, out, "user logged out")
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := newTestUserService()
	signup(t, svc, "owner@example.com", "")

	_, err := svc.Login(t.Context(), models.LoginRequest{Email: "owner@example.com", Password: "wrong"})
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Email or password is wrong", MessageOf(err))

	_, err = svc.Login(t.Context(), models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.Equal(t, "Email or password is wrong", MessageOf(err))
}

func TestAuthenticate_Garbage(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Authenticate(t.Context(), "garbage")

	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestUserAccessRules(t *testing.T) {
	svc := newTestUserService()
	admin := signup(t, svc, "owner@example.com", models.RoleAdmin)
	staff := signup(t, svc, "clerk@example.com", "")
	other := signup(t, svc, "other@example.com", "")

	adminClaims := &models.Claims{UserID: admin.ID, Role: models.RoleAdmin}
	staffClaims := &models.Claims{UserID: staff.ID, Role: models.RoleStaff}

	_, err := svc.GetUserByID(t.Context(), staffClaims, staff.ID)
	assert.NoError(t, err)

	_, err = svc.GetUserByID(t.Context(), staffClaims, other.ID)
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = svc.GetUserByID(t.Context(), adminClaims, other.ID)
	assert.NoError(t, err)

	_, err = svc.UpdateUser(t.Context(), staffClaims, staff.ID, models.UpdateUserRequest{Role: ptr(models.RoleAdmin)})
	assert.Equal(t, KindForbidden, KindOf(err))

	updated, err := svc.UpdateUser(t.Context(), adminClaims, staff.ID, models.UpdateUserRequest{Role: ptr(models.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	renamed, err := svc.UpdateUser(t.Context(), staffClaims, staff.ID, models.UpdateUserRequest{Name: ptr(" Renamed ")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Name)

	require.NoError(t, svc.DeleteUser(t.Context(), other.ID))
	assert.Equal(t, KindNotFound, KindOf(svc.DeleteUser(t.Context(), other.ID)))
}

func TestUpdateUser_ChangesPassword(t *testing.T) {
	svc := newTestUserService()
	user := signup(t, svc, "owner@example.com", "")
	claims := &models.Claims{UserID: user.ID, Role: user.Role}

	_, err := svc.UpdateUser(t.Context(), claims, user.ID, models.UpdateUserRequest{Password: ptr("newpass1")})
	require.NoError(t, err)

	_, err = svc.Login(t.Context(), models.LoginRequest{Email: "owner@example.com", Password: "newpass1"})
	assert.NoError(t, err)
}
