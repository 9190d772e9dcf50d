package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestManager_SetAndGetSession(t *testing.T) {
	m := NewManager()
	uid := uuid.New()
	ctx := m.SetSessionToContext(stdctx.Background(), uid, "admin")

	got, ok := m.GetAccountIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uid, got)

	role, ok := m.GetRoleFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "admin", role)
}

func TestManager_GetAccountID_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetAccountIDFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetRole_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetRoleFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_NilAccountIDNotReturned(t *testing.T) {
	m := NewManager()
	ctx := m.SetSessionToContext(stdctx.Background(), uuid.Nil, "")
	_, ok := m.GetAccountIDFromContext(ctx)
	assert.False(t, ok)
}
