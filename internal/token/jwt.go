package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/qzplatform/account-service/internal/model"
)

// SessionClaims represents JWT claims carrying the account identity and role.
type SessionClaims struct {
	jwt.RegisteredClaims
	AccountID uuid.UUID `json:"account_id"`
	Role      string    `json:"role"`
}

// JWT implements SessionManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT session manager with the provided secret key.
func NewJWT(secretKey string) model.SessionManager {
	return &JWT{secretKey: secretKey}
}

const (
	// SessionTTL is the validity window of a regular session.
	SessionTTL = time.Hour
	// ExtendedSessionTTL is the validity window of a keep-me-signed-in session.
	ExtendedSessionTTL = 7 * 24 * time.Hour
)

// IssueSession creates a signed session token for the account.
func (j *JWT) IssueSession(accountID uuid.UUID, role string, extended bool) (string, error) {
	ttl := SessionTTL
	if extended {
		ttl = ExtendedSessionTTL
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccountID: accountID,
		Role:      role,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ParseSession validates a session token and extracts the account identity.
// Tokens signed with a different secret or past expiry are rejected.
func (j *JWT) ParseSession(tokenString string) (uuid.UUID, string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, "", fmt.Errorf("session token is invalid")
	}
	return claims.AccountID, claims.Role, nil
}
