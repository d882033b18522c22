package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/auth"
	"github.com/yigit/admissions/internal/pkg/tokenstore"
	"github.com/yigit/admissions/internal/pkg/validation"
)

// AuthService handles registration, login and session revocation
type AuthService struct {
	users      UserStore
	jwtService *auth.JWTService
	revoked    tokenstore.Store
	hashCost   int
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, jwtService *auth.JWTService, revoked tokenstore.Store, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		revoked:    revoked,
		hashCost:   auth.BcryptCost,
		logger:     logger,
	}
}

// WithHashCost overrides the bcrypt cost. Intended for tests.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and signs a session token for it
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !req.Role.Valid() {
		return nil, apperrors.NewValidationError(string(dto.ErrorCodeValidationFailed), "Role must be dean or applicant")
	}
	if !validation.IsStrongPassword(req.Password) {
		return nil, apperrors.NewValidationError(string(dto.ErrorCodeValidationFailed),
			"Password must be at least 8 characters and contain a letter and a number")
	}

	hash, err := auth.HashPasswordWithCost(req.Password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         req.Role,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return s.issue(user)
}

// Login verifies credentials and signs a session token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrLoginFailed
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Int64("userID", user.ID).Msg("Failed login attempt")
		return nil, apperrors.ErrLoginFailed
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}

// Me returns the account behind a token
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return dto.NewUserResponse(user), nil
}

// Logout revokes the presented token until it expires
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAtTime()); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	s.logger.Info().Int64("userID", claims.UserID).Msg("User logged out")
	return nil
}

// Authenticate validates a raw token and rejects revoked ones
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking token revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	return claims, nil
}
