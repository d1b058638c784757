package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/spacekitchen/burgerhub/internal/auth"
	"github.com/spacekitchen/burgerhub/internal/config"
	"github.com/spacekitchen/burgerhub/internal/domain/user"
	"github.com/spacekitchen/burgerhub/internal/http/middlewares"
	"github.com/spacekitchen/burgerhub/internal/repo"
	"github.com/spacekitchen/burgerhub/internal/security"
)

type UsersStore interface {
	Create(ctx context.Context, email, passwordHash, name string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	Update(ctx context.Context, id string, upd user.Update) (user.User, error)
	Delete(ctx context.Context, id string) error
}

type RefreshTokensStore interface {
	Save(ctx context.Context, tokenHash, userID string) error
	Owner(ctx context.Context, tokenHash string) (string, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

type AuthHandler struct {
	users    UsersStore
	refresh  RefreshTokensStore
	jwt      *auth.Manager
	validate *validator.Validate
	log      *slog.Logger
}

func NewAuthHandler(users UsersStore, refresh RefreshTokensStore, jwtManager *auth.Manager, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		refresh:  refresh,
		jwt:      jwtManager,
		validate: validator.New(),
		log:      log,
	}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenRequest struct {
	Token string `json:"token"`
}

func profileJSON(u user.User) gin.H {
	return gin.H{
		"email": u.Email,
		"name":  u.Name,
	}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	// a missing or unreadable body is handled the same as empty fields
	_ = ctx.ShouldBindJSON(&req)

	if req.Email == "" || req.Password == "" || req.Name == "" {
		Fail(ctx, http.StatusForbidden, "Email, password and name are required fields")
		return
	}

	// the hosted service answers a bare 500 to a syntactically broken
	// email; callers assert on that status, so it stays
	if err := h.validate.Var(req.Email, "email"); err != nil {
		RespondInternal(ctx)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	u, err := h.users.Create(cctx, req.Email, hash, req.Name)

	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			Fail(ctx, http.StatusForbidden, "User already exists")
			return
		}

		RespondInternal(ctx)
		return
	}

	h.issuePair(ctx, cctx, u)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	// every failure here is deliberately the same answer so callers
	// cannot probe which emails exist
	_ = ctx.ShouldBindJSON(&req)

	if req.Email == "" || req.Password == "" {
		Fail(ctx, http.StatusUnauthorized, "email or password are incorrect")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		Fail(ctx, http.StatusUnauthorized, "email or password are incorrect")
		return
	}

	err = security.CheckPassword(u.PasswordHash, req.Password)

	if err != nil {
		Fail(ctx, http.StatusUnauthorized, "email or password are incorrect")
		return
	}

	h.issuePair(ctx, cctx, u)
}

// Logout revokes the refresh token presented in the body. Revocation is
// idempotent towards the store but not towards the caller: a second
// logout with the same token answers 404, because a revoked token is
// indistinguishable from one that never existed.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	var req TokenRequest

	_ = ctx.ShouldBindJSON(&req)

	if req.Token == "" {
		Fail(ctx, http.StatusNotFound, "Token required")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.refresh.Revoke(cctx, h.jwt.HashRefreshToken(req.Token))

	if err != nil {
		// an access token in this slot hashes to nothing we know,
		// so it fails the same way as an absent token
		Fail(ctx, http.StatusNotFound, "Token required")
		return
	}

	OK(ctx, gin.H{"message": "Successful logout"})
}

// RefreshToken rotates a refresh token: the presented one is revoked and a
// fresh pair is issued in its place.
func (h *AuthHandler) RefreshToken(ctx *gin.Context) {
	var req TokenRequest

	_ = ctx.ShouldBindJSON(&req)

	if req.Token == "" {
		Fail(ctx, http.StatusNotFound, "Token required")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	hash := h.jwt.HashRefreshToken(req.Token)

	userID, err := h.refresh.Owner(cctx, hash)

	if err != nil {
		Fail(ctx, http.StatusNotFound, "Token required")
		return
	}

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		Fail(ctx, http.StatusNotFound, "Token required")
		return
	}

	if err := h.refresh.Revoke(cctx, hash); err != nil && !errors.Is(err, repo.ErrRefreshTokenNotFound) {
		RespondInternal(ctx)
		return
	}

	h.issuePair(ctx, cctx, u)
}

func (h *AuthHandler) GetUser(ctx *gin.Context) {
	u, ok := h.currentUser(ctx)

	if !ok {
		return
	}

	OK(ctx, gin.H{"user": profileJSON(u)})
}

type UpdateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *AuthHandler) UpdateUser(ctx *gin.Context) {
	u, ok := h.currentUser(ctx)

	if !ok {
		return
	}

	var req UpdateUserRequest

	_ = ctx.ShouldBindJSON(&req)

	upd := user.Update{}

	if req.Email != "" {
		// same bug-compatible rule as registration
		if err := h.validate.Var(req.Email, "email"); err != nil {
			RespondInternal(ctx)
			return
		}

		upd.Email = &req.Email
	}

	if req.Name != "" {
		upd.Name = &req.Name
	}

	if req.Password != "" {
		hash, err := security.HashPassword(req.Password)

		if err != nil {
			RespondInternal(ctx)
			return
		}

		upd.PasswordHash = &hash
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	updated, err := h.users.Update(cctx, u.ID, upd)

	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			Fail(ctx, http.StatusForbidden, "User with such email already exists")
			return
		}

		if errors.Is(err, repo.ErrUserNotFound) {
			Fail(ctx, http.StatusUnauthorized, "You should be authorised")
			return
		}

		RespondInternal(ctx)
		return
	}

	OK(ctx, gin.H{"user": profileJSON(updated)})
}

func (h *AuthHandler) DeleteUser(ctx *gin.Context) {
	u, ok := h.currentUser(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.users.Delete(cctx, u.ID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			Fail(ctx, http.StatusUnauthorized, "You should be authorised")
			return
		}

		RespondInternal(ctx)
		return
	}

	// all sessions of a deleted account die with it
	if err := h.refresh.RevokeAllForUser(cctx, u.ID); err != nil {
		h.log.Error("revoke sessions after delete", "user_id", u.ID, "err", err)
	}

	OKWithStatus(ctx, http.StatusAccepted, gin.H{"message": "User successfully removed"})
}

// currentUser resolves the authenticated caller. A token that outlived its
// account is answered as unauthenticated.
func (h *AuthHandler) currentUser(ctx *gin.Context) (user.User, bool) {
	id, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		Fail(ctx, http.StatusUnauthorized, "You should be authorised")
		return user.User{}, false
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, id)

	if err != nil {
		Fail(ctx, http.StatusUnauthorized, "You should be authorised")
		return user.User{}, false
	}

	return u, true
}

// issuePair mints a fresh token pair for u and writes the standard auth
// payload. Prior sessions stay valid.
func (h *AuthHandler) issuePair(ctx *gin.Context, cctx context.Context, u user.User) {
	accessToken, err := h.jwt.GenerateAccessToken(u.ID)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	refreshToken, err := h.jwt.NewRefreshToken()

	if err != nil {
		RespondInternal(ctx)
		return
	}

	if err := h.refresh.Save(cctx, h.jwt.HashRefreshToken(refreshToken), u.ID); err != nil {
		RespondInternal(ctx)
		return
	}

	OK(ctx, gin.H{
		"user": profileJSON(u),
		// clients put this value straight into the Authorization header
		"accessToken":  "Bearer " + accessToken,
		"refreshToken": refreshToken,
	})
}
