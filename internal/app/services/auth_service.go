package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/repositories"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
	"github.com/tinkerlab/labtrack/internal/pkg/auth"
	"github.com/tinkerlab/labtrack/internal/pkg/revocation"
)

// LoginInput is the profile presented at login. There is no password check;
// the email is the identity.
type LoginInput struct {
	Email     string
	FirstName *string
	LastName  *string
}

// LoginResult is an issued session
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	revoked    revocation.Store
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	revoked revocation.Store,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		revoked:    revoked,
		logger:     logger,
	}
}

// Login upserts the user keyed by email and issues a token carrying the
// stored role. New users start as students.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("email", "a valid email is required")
	}

	user, err := s.userRepo.Upsert(ctx, &models.User{
		ID:        email,
		Email:     &email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      models.RoleStudent,
		IsActive:  true,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to upsert user at login")
		return nil, fmt.Errorf("error storing user: %w", err)
	}

	if !user.IsActive {
		s.logger.Warn().Str("userID", user.ID).Msg("Login attempt on disabled account")
		return nil, apperrors.ErrAccountDisabled
	}

	issued, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error().Err(err).Str("userID", user.ID).Msg("Failed to generate token")
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return &LoginResult{Token: issued.Token, ExpiresAt: issued.ExpiresAt, User: user}, nil
}

// Logout revokes the token with the given id until it would have expired
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return apperrors.ErrTokenInvalid
	}
	if err := s.revoked.Revoke(ctx, tokenID, expiresAt); err != nil {
		s.logger.Error().Err(err).Str("tokenID", tokenID).Msg("Failed to revoke token")
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// CurrentUser returns the stored profile of the caller
func (s *AuthService) CurrentUser(ctx context.Context, principal models.Principal) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return user, nil
}
