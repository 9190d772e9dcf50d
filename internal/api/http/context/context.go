package context

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// Context keys used to store and retrieve the authenticated session.
const (
	accountIDKey contextKey = "account_id"
	roleKey      contextKey = "role"
)

// Manager stores and retrieves the authenticated account identity on request
// contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetSessionToContext returns a new context carrying the account ID and role.
func (m *Manager) SetSessionToContext(ctx context.Context, accountID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, accountIDKey, accountID)
	return context.WithValue(ctx, roleKey, role)
}

// GetAccountIDFromContext retrieves the account ID from the context.
// The second return value reports whether an ID was present.
func (m *Manager) GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	accountID, ok := ctx.Value(accountIDKey).(uuid.UUID)
	if !ok || accountID == uuid.Nil {
		return uuid.Nil, false
	}
	return accountID, true
}

// GetRoleFromContext retrieves the session role from the context.
// The second return value reports whether a role was present.
func (m *Manager) GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}
