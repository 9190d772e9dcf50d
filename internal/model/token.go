package model

import "github.com/google/uuid"

// SessionManager issues and validates signed session tokens.
type SessionManager interface {
	// IssueSession signs a token asserting the account identity and role.
	// Extended sessions live 7 days, regular ones 1 hour.
	IssueSession(accountID uuid.UUID, role string, extended bool) (string, error)
	ParseSession(token string) (accountID uuid.UUID, role string, err error)
}
