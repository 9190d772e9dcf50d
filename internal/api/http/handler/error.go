package handler

import (
	"errors"
	"net/http"

	"github.com/qzplatform/account-service/internal/model"
)

// handleError maps service errors to HTTP statuses with fixed generic
// messages. Internal error text never reaches the client.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrMissingFields):
		writeMessage(w, http.StatusBadRequest, "name and email are mandatory")
	case errors.Is(err, model.ErrPasswordMismatch):
		writeMessage(w, http.StatusBadRequest, "passwords do not match")
	case errors.Is(err, model.ErrInvalidResetToken):
		writeMessage(w, http.StatusBadRequest, "invalid or expired token")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrAccountDeactivated):
		writeMessage(w, http.StatusForbidden, "you have been deactivated, contact administrator")
	case errors.Is(err, model.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "account not found")
	case errors.Is(err, model.ErrDuplicateEmail):
		writeMessage(w, http.StatusConflict, "account already exists")
	default:
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
