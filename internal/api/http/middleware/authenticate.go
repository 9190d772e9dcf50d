package middleware

import (
	"net/http"
	"strings"

	"github.com/qzplatform/account-service/internal/logger"
	"github.com/qzplatform/account-service/internal/model"
)

// Authenticate validates bearer tokens and injects the session identity into
// the request context.
type Authenticate struct {
	sessions       model.SessionManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions model.SessionManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// Wrap parses the Authorization header, validates the session token and calls
// next with the account identity in context. Requests without a valid token
// get a 401 with a generic message.
func (m *Authenticate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tokenString == "" {
			unauthorized(w, "missing authorization token")
			return
		}

		accountID, role, err := m.sessions.ParseSession(tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: token rejected",
				"error", err.Error())
			unauthorized(w, "invalid authorization token")
			return
		}

		ctx := m.contextManager.SetSessionToContext(r.Context(), accountID, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + message + `"}`))
}
