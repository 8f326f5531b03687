package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/app/repositories"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
	pkgauth "github.com/sispe-project/sispe/internal/pkg/auth"
)

// AuthService handles the login/logout session transitions
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *pkgauth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *pkgauth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// LoginResult carries the session and its tokens after authentication
type LoginResult struct {
	Session          *models.Session
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int
	RefreshExpiresIn int
}

// Login verifies credentials and opens a session. A password stored under
// the legacy scheme is transparently rehashed with the current scheme on
// the first successful verification; the upgrade is idempotent.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same failure as a wrong password: login must not reveal
			// which usernames exist.
			return nil, apperrors.ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("error loading user for login: %w", err)
	}

	ok, legacy, err := pkgauth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		s.logger.Error().Str("username", username).Msg("Stored credential unparsable by either scheme")
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrAuthenticationFailed
	}

	if legacy {
		if err := s.upgradeCredential(ctx, username, password); err != nil {
			// The login itself succeeded; the upgrade retries on the
			// next legacy verification.
			s.logger.Warn().Err(err).Str("username", username).Msg("Failed to upgrade legacy credential")
		}
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.Store(ctx, username, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	s.logger.Info().Str("username", username).Str("role", string(user.Role)).Msg("User logged in")

	return &LoginResult{
		Session:          &models.Session{Username: user.Username, Role: user.Role},
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

// upgradeCredential rehashes a legacy-scheme password with the current
// scheme and persists the replacement
func (s *AuthService) upgradeCredential(ctx context.Context, username, password string) error {
	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error rehashing password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, username, hash); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("Legacy credential upgraded to current scheme")
	return nil
}

// Refresh exchanges a valid refresh token for a new token pair. The used
// token is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	stored, err := s.tokenRepo.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByUsername(ctx, stored.Username)
	if err != nil {
		return nil, err
	}

	accessToken, newRefreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Store(ctx, user.Username, newRefreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &LoginResult{
		Session:          &models.Session{Username: user.Username, Role: user.Role},
		AccessToken:      accessToken,
		RefreshToken:     newRefreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

// Logout unconditionally closes the session. Revoking an already revoked
// or unknown token is not an error: the end state is logged out either way.
func (s *AuthService) Logout(ctx context.Context, session *models.Session, refreshToken string) error {
	if refreshToken != "" {
		if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
			return err
		}
	}

	if session != nil {
		s.logger.Info().Str("username", session.Username).Msg("User logged out")
	}

	return nil
}
