package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// SessionManager is a testify mock for model.SessionManager.
type SessionManager struct {
	mock.Mock
}

func (m *SessionManager) IssueSession(accountID uuid.UUID, role string, extended bool) (string, error) {
	args := m.Called(accountID, role, extended)
	return args.String(0), args.Error(1)
}

func (m *SessionManager) ParseSession(token string) (uuid.UUID, string, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}
