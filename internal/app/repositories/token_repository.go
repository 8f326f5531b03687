package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sispe-project/sispe/internal/app/models"
	"github.com/sispe-project/sispe/internal/pkg/apperrors"
)

// TokenRepository handles refresh token persistence
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{
		db: db,
	}
}

// Store persists a refresh token for a user
func (r *TokenRepository) Store(ctx context.Context, username, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auth_tokens (username, token, expires_at, revoked, created_at)
		VALUES (?, ?, ?, 0, ?)`,
		username, token, expiresAt, time.Now())

	if err != nil {
		return fmt.Errorf("error storing refresh token: %w", err)
	}

	return nil
}

// Get retrieves a refresh token row
func (r *TokenRepository) Get(ctx context.Context, token string) (*models.RefreshToken, error) {
	row := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, token, expires_at, revoked, created_at
		FROM auth_tokens
		WHERE token = ?`,
		token).Scan(&row.ID, &row.Username, &row.Token, &row.ExpiresAt, &row.Revoked, &row.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error getting refresh token: %w", err)
	}

	return row, nil
}

// Revoke marks a refresh token as revoked
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE auth_tokens
		SET revoked = 1
		WHERE token = ?`,
		token)

	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking revoke result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// RevokeAllForUser revokes every refresh token belonging to a user
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, username string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE auth_tokens
		SET revoked = 1
		WHERE username = ?`,
		username)

	if err != nil {
		return fmt.Errorf("error revoking user tokens: %w", err)
	}

	return nil
}

// DeleteExpired removes tokens that expired before the cutoff
func (r *TokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM auth_tokens
		WHERE expires_at < ?`,
		cutoff)

	if err != nil {
		return fmt.Errorf("error deleting expired tokens: %w", err)
	}

	return nil
}
