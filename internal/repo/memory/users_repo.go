package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spacekitchen/burgerhub/internal/domain/user"
	"github.com/spacekitchen/burgerhub/internal/repo"
)

type UsersRepo struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	byEmail map[string]string // email -> id
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		byID:    make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash, name string) (user.User, error) {
	key := normalizeEmail(email)
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[key]; exists {
		return user.User{}, repo.ErrEmailTaken
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.byID[u.ID] = u
	r.byEmail[key] = u.ID

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]

	if !ok {
		return user.User{}, repo.ErrUserNotFound
	}

	return r.byID[id], nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]

	if !ok {
		return user.User{}, repo.ErrUserNotFound
	}

	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, id string, upd user.Update) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]

	if !ok {
		return user.User{}, repo.ErrUserNotFound
	}

	if upd.Email != nil {
		newKey := normalizeEmail(*upd.Email)
		oldKey := normalizeEmail(u.Email)

		if newKey != oldKey {
			if _, exists := r.byEmail[newKey]; exists {
				return user.User{}, repo.ErrEmailTaken
			}

			delete(r.byEmail, oldKey)
			r.byEmail[newKey] = id
		}

		u.Email = *upd.Email
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}

	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}

	u.UpdatedAt = time.Now().UTC()
	r.byID[id] = u

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]

	if !ok {
		return repo.ErrUserNotFound
	}

	delete(r.byEmail, normalizeEmail(u.Email))
	delete(r.byID, id)

	return nil
}
