package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager stores and retrieves the authenticated account identity on
// a request context.
type ContextManager interface {
	SetSessionToContext(ctx context.Context, accountID uuid.UUID, role string) context.Context
	GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool)
	GetRoleFromContext(ctx context.Context) (string, bool)
}
