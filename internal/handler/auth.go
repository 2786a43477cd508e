package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tasklight/tasklight/internal/handler/dto"
	"github.com/tasklight/tasklight/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	token, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.handleAuthError(w, r, err)
		return
	}

	h.logger.Info("user_registered",
		"username", req.Username,
		"request_id", requestID(r),
	)

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleAuthError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// handleAuthError maps auth service errors to HTTP responses.
// Login failures share one message so a response never reveals whether
// the username exists.
func (h *AuthHandler) handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusBadRequest, "USER_EXISTS", "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "VALIDATION", "Invalid registration input")
	default:
		h.logger.Error("auth request failed",
			"error", err.Error(),
			"request_id", requestID(r),
		)
		writeServerError(w)
	}
}
