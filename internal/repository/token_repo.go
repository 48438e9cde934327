package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nonprofit-ops/internal/model"
)

// TokenRepository stores refresh token ids so they survive restarts and can
// be revoked server-side.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Store(ctx context.Context, tokenID string, userID string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (token_id, user_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)`,
		tokenID, userID, expiresAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// Consume deletes a token and reports who owned it. Deleting on read makes
// each refresh token single use.
func (r *TokenRepository) Consume(ctx context.Context, tokenID string) (string, error) {
	var userID string
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx,
		`DELETE FROM refresh_tokens WHERE token_id::text = $1 RETURNING user_id, expires_at`,
		tokenID).Scan(&userID, &expiresAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", model.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("consume refresh token: %w", err)
	}

	if time.Now().UTC().After(expiresAt) {
		return "", model.ErrTokenExpired
	}
	return userID, nil
}

func (r *TokenRepository) Delete(ctx context.Context, tokenID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_id::text = $1`, tokenID)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
