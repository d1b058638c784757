package memory

import (
	"context"
	"sync"

	"github.com/spacekitchen/burgerhub/internal/repo"
)

// RefreshTokensRepo keys live refresh tokens by their HMAC hash. Revoking
// removes the entry entirely, so a revoked token is indistinguishable from
// one that never existed.
type RefreshTokensRepo struct {
	mu     sync.RWMutex
	owners map[string]string // token hash -> user id
}

func NewRefreshTokensRepo() *RefreshTokensRepo {
	return &RefreshTokensRepo{
		owners: make(map[string]string),
	}
}

func (r *RefreshTokensRepo) Save(ctx context.Context, tokenHash, userID string) error {
	r.mu.Lock()
	r.owners[tokenHash] = userID
	r.mu.Unlock()

	return nil
}

func (r *RefreshTokensRepo) Owner(ctx context.Context, tokenHash string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.owners[tokenHash]

	if !ok {
		return "", repo.ErrRefreshTokenNotFound
	}

	return userID, nil
}

func (r *RefreshTokensRepo) Revoke(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owners[tokenHash]; !ok {
		return repo.ErrRefreshTokenNotFound
	}

	delete(r.owners, tokenHash)

	return nil
}

func (r *RefreshTokensRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, owner := range r.owners {
		if owner == userID {
			delete(r.owners, hash)
		}
	}

	return nil
}
