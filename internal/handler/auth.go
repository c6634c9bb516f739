package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/newsdesk/newsdesk/internal/handler/dto"
	"github.com/newsdesk/newsdesk/internal/service"
)

// Account outcome messages. Domain failures are reported with status 200.
const (
	msgRegistered         = "registered"
	msgUsernameExists     = "Username already exists"
	msgInvalidCredentials = "Invalid credentials"
)

// Accounts registers users and checks credentials.
type Accounts interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (int64, error)
}

// AuthHandler handles registration and login.
type AuthHandler struct {
	accounts Accounts
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts Accounts, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil || !req.Valid() {
		writeError(w, http.StatusUnprocessableEntity, msgInvalidBody)
		return
	}

	err := h.accounts.Register(r.Context(), *req.Username, *req.Password)
	switch {
	case err == nil:
		h.logger.Info("user_registered", "username", *req.Username)
		writeJSON(w, http.StatusOK, dto.StatusResponse{Status: msgRegistered})
	case errors.Is(err, service.ErrDuplicateUsername):
		writeError(w, http.StatusOK, msgUsernameExists)
	default:
		h.logger.Error("registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil || !req.Valid() {
		writeError(w, http.StatusUnprocessableEntity, msgInvalidBody)
		return
	}

	id, err := h.accounts.Login(r.Context(), *req.Username, *req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.LoginResponse{UserID: id})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusOK, msgInvalidCredentials)
	default:
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
