package handler

import (
	"context"
	"net/http"

	"github.com/qzplatform/account-service/internal/logger"
	"github.com/qzplatform/account-service/internal/model"
)

// AuthService defines self-registration and login operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (model.Account, error)
	Login(ctx context.Context, email, password, role string, keepSignedIn bool) (token string, firstName string, err error)
}

// ResetService defines the two-phase password reset operations.
type ResetService interface {
	RequestReset(ctx context.Context, email string) error
	ConsumeReset(ctx context.Context, token, newPassword, confirmPassword string) error
}

// Auth handles HTTP endpoints for authentication and password reset.
type Auth struct {
	authService  AuthService
	resetService ResetService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, resetService ResetService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		resetService: resetService,
		logger:       logger,
	}
}

// Register creates an account with a caller-supplied password.
// POST /api/auths/register
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "account registered successfully")
}

// Login verifies credentials and returns a session token with the account
// owner's first name.
// POST /api/auths/login
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email          string `json:"email"`
		Password       string `json:"password"`
		Role           string `json:"role"`
		KeepMeSignedIn bool   `json:"keepMeSignedIn"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, firstName, err := h.authService.Login(r.Context(), req.Email, req.Password, req.Role, req.KeepMeSignedIn)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":     token,
		"firstname": firstName,
	})
}

// ForgotPassword starts a password reset. The response is identical whether
// or not the email is registered.
// POST /api/auths/forgot-password
func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.resetService.RequestReset(r.Context(), req.Email); err != nil {
		h.logger.Error("Auth handler: reset request failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "reset password link sent")
}

// ResetPassword completes a password reset with the token from the mailed
// link.
// POST /api/auths/reset-password/{token}
func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := r.PathValue("token")
	if err := h.resetService.ConsumeReset(r.Context(), token, req.Password, req.ConfirmPassword); err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "password changed successfully")
}
