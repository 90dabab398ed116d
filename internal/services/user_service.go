package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"invoice-service/internal/logger"
	"invoice-service/internal/models"
	"invoice-service/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, claims *models.Claims) error
	// Authenticate verifies a bearer token and rejects revoked ones.
	Authenticate(ctx context.Context, token string) (*models.Claims, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUserByID(ctx context.Context, actor *models.Claims, id string) (*models.User, error)
	UpdateUser(ctx context.Context, actor *models.Claims, id string, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserService struct {
	userRepo   repository.IUserRepository
	jwtService *JWTService
	blacklist  ITokenBlacklist
	hashCost   int
	log        zerolog.Logger
}

func NewUserService(userRepo repository.IUserRepository, jwtService *JWTService, blacklist ITokenBlacklist) *UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		hashCost:   bcrypt.DefaultCost,
		log:        logger.WithComponent("user-service"),
	}
}

func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	const op = "Signup"

	email := strings.TrimSpace(req.Email)
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, validationError(op, "This email is already used")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, internalError(op, "Failed to check existing user", err)
	}

	role, err := s.signupRole(ctx, req.Role)
	if err != nil {
		return nil, internalError(op, "Failed to resolve user role", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, internalError(op, "Failed to hash password", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validationError(op, "This email is already used")
		}
		return nil, internalError(op, "Failed to create user", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user signed up")
	return user, nil
}

// signupRole lets the very first account bootstrap as admin. Later self
// registrations are always staff; admins promote users through UpdateUser.
func (s *UserService) signupRole(ctx context.Context, requested models.Role) (models.Role, error) {
	if requested != models.RoleAdmin {
		return models.RoleStaff, nil
	}
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return models.RoleAdmin, nil
	}
	return models.RoleStaff, nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	const op = "Login"
	const badCredentials = "Email or password is wrong"

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError(op, badCredentials)
		}
		return nil, internalError(op, "Failed to load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, validationError(op, badCredentials)
	}

	token, expiresAt, err := s.jwtService.GenerateNewToken(user.ID, user.Role)
	if err != nil {
		return nil, internalError(op, "Failed to issue token", err)
	}
	userLog := logger.WithUserID(user.ID)
	userLog.Info().Str("role", string(user.Role)).Msg("user logged in")
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *UserService) Logout(ctx context.Context, claims *models.Claims) error {
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		return internalError("Logout", "Failed to revoke token", err)
	}
	userLog := logger.WithUserID(claims.UserID)
	userLog.Info().Msg("user logged out")
	return nil
}

func (s *UserService) Authenticate(ctx context.Context, token string) (*models.Claims, error) {
	const op = "Authenticate"

	claims, err := s.jwtService.VerifyToken(token)
	if err != nil {
		return nil, newError(KindUnauthorized, op, "Invalid or expired token, please log in again", err)
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, internalError(op, "Failed to check token", err)
	}
	if revoked {
		return nil, newError(KindUnauthorized, op, "Token has been logged out, please log in again", nil)
	}
	return claims, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, internalError("GetAllUsers", "Failed to fetch users", err)
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, actor *models.Claims, id string) (*models.User, error) {
	const op = "GetUserByID"

	user, err := s.loadUser(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if !canAccessUser(actor, user.ID) {
		return nil, newError(KindForbidden, op, "You can only see your own details", nil)
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, actor *models.Claims, id string, req models.UpdateUserRequest) (*models.User, error) {
	const op = "UpdateUser"

	user, err := s.loadUser(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if !canAccessUser(actor, user.ID) {
		return nil, newError(KindForbidden, op, "You can only update your own details", nil)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Role != nil && *req.Role != user.Role {
		if actor.Role != models.RoleAdmin {
			return nil, newError(KindForbidden, op, "Only admins can change roles", nil)
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.hashCost)
		if err != nil {
			return nil, internalError(op, "Failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, validationError(op, "This email is already used")
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFoundError(op, "User not found")
		}
		return nil, internalError(op, "Failed to update user", err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError("DeleteUser", "User not found")
		}
		return internalError("DeleteUser", "Failed to delete user", err)
	}
	return nil
}

func (s *UserService) loadUser(ctx context.Context, op, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(op, "User not found")
		}
		return nil, internalError(op, "Failed to load user", err)
	}
	return user, nil
}

func canAccessUser(actor *models.Claims, userID string) bool {
	return actor != nil && (actor.UserID == userID || actor.Role == models.RoleAdmin)
}
