package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qzplatform/account-service/internal/credentials"
	"github.com/qzplatform/account-service/internal/logger"
	"github.com/qzplatform/account-service/internal/mail"
	"github.com/qzplatform/account-service/internal/model"
)

// ResetTokenTTL is the validity window of a password-reset token.
const ResetTokenTTL = time.Hour

// Reset orchestrates the two-phase password reset protocol.
type Reset struct {
	accountStore model.AccountStore
	hasher       credentials.Hasher
	dispatcher   model.MailDispatcher
	resetURLFmt  string
	logger       *logger.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewReset(
	accountStore model.AccountStore,
	hasher credentials.Hasher,
	dispatcher model.MailDispatcher,
	resetURLFmt string,
	logger *logger.Logger,
) *Reset {
	return &Reset{
		accountStore: accountStore,
		hasher:       hasher,
		dispatcher:   dispatcher,
		resetURLFmt:  resetURLFmt,
		logger:       logger,
		now:          time.Now,
	}
}

// RequestReset starts a password reset for the account with the given email.
// The result is identical whether or not the account exists, so the endpoint
// cannot be used to probe for registered emails.
func (s *Reset) RequestReset(ctx context.Context, email string) error {
	account, err := s.accountStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Debug("Reset service: reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get account by email: %w", err)
	}

	token, err := credentials.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiry := s.now().Add(ResetTokenTTL)
	account.ResetToken = &token
	account.ResetTokenExpiry = &expiry

	account, err = s.accountStore.Save(ctx, account)
	if err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}

	resetURL := fmt.Sprintf(s.resetURLFmt, token)
	if msg, err := mail.PasswordResetMessage(account, resetURL); err == nil {
		s.dispatcher.Enqueue(ctx, msg)
	} else {
		s.logger.Error("Reset service: failed to build reset mail",
			"account_id", account.ID,
			"error", err.Error())
	}

	s.logger.Info("Reset service: reset link issued",
		"account_id", account.ID)

	return nil
}

// ConsumeReset completes a password reset. The token must match a pending
// reset strictly before its expiry; consuming it clears both reset fields, so
// a token validates at most once.
func (s *Reset) ConsumeReset(ctx context.Context, token, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return model.ErrPasswordMismatch
	}

	account, err := s.accountStore.GetByResetToken(ctx, token, s.now())
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("failed to get account by reset token: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	account.PasswordHash = hash
	account.ResetToken = nil
	account.ResetTokenExpiry = nil

	if _, err := s.accountStore.Save(ctx, account); err != nil {
		return fmt.Errorf("failed to save new password: %w", err)
	}

	s.logger.Info("Reset service: password changed",
		"account_id", account.ID)

	return nil
}
