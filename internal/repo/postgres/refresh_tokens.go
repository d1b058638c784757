package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spacekitchen/burgerhub/internal/repo"
)

// RefreshTokensRepo persists HMAC hashes of live refresh tokens. Rows are
// deleted on revocation, which makes a revoked token observably identical
// to one that never existed.
type RefreshTokensRepo struct {
	pool *pgxpool.Pool
}

func NewRefreshTokensRepo(pool *pgxpool.Pool) *RefreshTokensRepo {
	return &RefreshTokensRepo{pool: pool}
}

func (r *RefreshTokensRepo) Save(ctx context.Context, tokenHash, userID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (token_hash, user_id, created_at)
		 VALUES ($1, $2, NOW())`,
		tokenHash, userID,
	)

	return err
}

func (r *RefreshTokensRepo) Owner(ctx context.Context, tokenHash string) (string, error) {
	var userID string

	err := r.pool.QueryRow(ctx,
		`SELECT user_id FROM refresh_tokens WHERE token_hash = $1`,
		tokenHash,
	).Scan(&userID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repo.ErrRefreshTokenNotFound
		}

		return "", err
	}

	return userID, nil
}

func (r *RefreshTokensRepo) Revoke(ctx context.Context, tokenHash string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE token_hash = $1`,
		tokenHash,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return repo.ErrRefreshTokenNotFound
	}

	return nil
}

func (r *RefreshTokensRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = $1`,
		userID,
	)

	return err
}
