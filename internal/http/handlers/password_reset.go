package handlers

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spacekitchen/burgerhub/internal/config"
	"github.com/spacekitchen/burgerhub/internal/domain/user"
	"github.com/spacekitchen/burgerhub/internal/security"
)

// PasswordResetHandler implements the reset request/confirm plumbing. No
// mail actually leaves the process; the code is written to the log so
// operators can complete a reset by hand.
type PasswordResetHandler struct {
	users UsersStore
	log   *slog.Logger

	mu    sync.Mutex
	codes map[string]string // code -> email
}

func NewPasswordResetHandler(users UsersStore, log *slog.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{
		users: users,
		log:   log,
		codes: make(map[string]string),
	}
}

type ResetRequest struct {
	Email string `json:"email"`
}

type ResetConfirmRequest struct {
	Password string `json:"password"`
	Token    string `json:"token"`
}

func (h *PasswordResetHandler) Request(ctx *gin.Context) {
	var req ResetRequest

	_ = ctx.ShouldBindJSON(&req)

	if req.Email == "" {
		Fail(ctx, http.StatusBadRequest, "Email required")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// unknown emails get the same answer; the request endpoint must not
	// leak which accounts exist
	if _, err := h.users.GetByEmail(cctx, req.Email); err == nil {
		code := uuid.NewString()

		h.mu.Lock()
		h.codes[code] = req.Email
		h.mu.Unlock()

		h.log.Info("password reset requested", "email", req.Email, "code", code)
	}

	OK(ctx, gin.H{"message": "Reset email sent"})
}

func (h *PasswordResetHandler) Confirm(ctx *gin.Context) {
	var req ResetConfirmRequest

	_ = ctx.ShouldBindJSON(&req)

	if req.Password == "" || req.Token == "" {
		Fail(ctx, http.StatusNotFound, "Invalid reset token")
		return
	}

	h.mu.Lock()
	email, ok := h.codes[req.Token]
	if ok {
		delete(h.codes, req.Token)
	}
	h.mu.Unlock()

	if !ok {
		Fail(ctx, http.StatusNotFound, "Invalid reset token")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, email)

	if err != nil {
		Fail(ctx, http.StatusNotFound, "Invalid reset token")
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	if _, err := h.users.Update(cctx, u.ID, user.Update{PasswordHash: &hash}); err != nil {
		RespondInternal(ctx)
		return
	}

	OK(ctx, gin.H{"message": "Password successfully reset"})
}
