package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/qzplatform/account-service/internal/api/http/context"
	"github.com/qzplatform/account-service/internal/mocks"
	"github.com/qzplatform/account-service/internal/testutil"
)

func TestAuthenticate_ValidToken(t *testing.T) {
	sessions := &mocks.SessionManager{}
	ctxMgr := httpctx.NewManager()
	uid := uuid.New()
	sessions.On("ParseSession", "good-token").Return(uid, "admin", nil)

	var gotID uuid.UUID
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = ctxMgr.GetAccountIDFromContext(r.Context())
		gotRole, _ = ctxMgr.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	m := NewAuthenticate(sessions, ctxMgr, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	m.Wrap(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uid, gotID)
	assert.Equal(t, "admin", gotRole)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	sessions := &mocks.SessionManager{}
	m := NewAuthenticate(sessions, httpctx.NewManager(), testutil.MakeNoopLogger())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	rec := httptest.NewRecorder()

	m.Wrap(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	sessions.AssertNotCalled(t, "ParseSession")
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	sessions := &mocks.SessionManager{}
	sessions.On("ParseSession", "bad-token").Return(uuid.Nil, "", errors.New("token is expired"))

	m := NewAuthenticate(sessions, httpctx.NewManager(), testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	m.Wrap(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"invalid authorization token"}`, rec.Body.String())
}
