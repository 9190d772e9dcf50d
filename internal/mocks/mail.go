package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/qzplatform/account-service/internal/model"
)

// Mailer is a testify mock for model.Mailer.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) Send(ctx context.Context, msg model.MailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MailDispatcher is a testify mock for model.MailDispatcher.
type MailDispatcher struct {
	mock.Mock
}

func (m *MailDispatcher) Enqueue(ctx context.Context, msg model.MailMessage) {
	m.Called(ctx, msg)
}
