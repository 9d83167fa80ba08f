package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/englishclub/academy/internal/app/models"
	"github.com/englishclub/academy/internal/pkg/apperrors"
	"github.com/englishclub/academy/internal/pkg/auth"
	"github.com/englishclub/academy/internal/pkg/logger"
)

// UserStore is the persistence surface the auth service needs
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUsersByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
}

// LoginResult carries the issued token and the signed-in profile
type LoginResult struct {
	Token     string
	ExpiresIn int
	User      *models.User
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, user *models.User, password string) (*models.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListTeachers(ctx context.Context) ([]*models.User, error)
}

type authServiceImpl struct {
	userRepo   UserStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo UserStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info().Str("userID", user.ID.String()).Str("role", string(user.RoleType)).Msg("User signed in")

	return &LoginResult{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      user,
	}, nil
}

// Register creates a new dashboard profile
func (s *authServiceImpl) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: user is nil", apperrors.ErrValidationFailed)
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email", apperrors.ErrValidationFailed)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidationFailed)
	}
	switch user.RoleType {
	case models.RoleAdmin, models.RoleSecretary, models.RoleTeacher, models.RoleParent:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, user.RoleType)
	}

	exists, err := s.userRepo.UserExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrResourceAlreadyExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return s.userRepo.GetUserByID(ctx, id)
}

func (s *authServiceImpl) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

// ListTeachers retrieves the profiles courses can be assigned to
func (s *authServiceImpl) ListTeachers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetUsersByRole(ctx, models.RoleTeacher)
}
