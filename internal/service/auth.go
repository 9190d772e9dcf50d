package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qzplatform/account-service/internal/credentials"
	"github.com/qzplatform/account-service/internal/logger"
	"github.com/qzplatform/account-service/internal/mail"
	"github.com/qzplatform/account-service/internal/model"
)

// Auth handles self-registration and login.
type Auth struct {
	accountStore model.AccountStore
	hasher       credentials.Hasher
	sessions     model.SessionManager
	dispatcher   model.MailDispatcher
	logger       *logger.Logger
}

func NewAuth(
	accountStore model.AccountStore,
	hasher credentials.Hasher,
	sessions model.SessionManager,
	dispatcher model.MailDispatcher,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		accountStore: accountStore,
		hasher:       hasher,
		sessions:     sessions,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// Register creates an account with a caller-supplied password. The account is
// committed before the welcome mail is attempted; delivery failure never
// unwinds the registration.
func (a *Auth) Register(ctx context.Context, name, email, password, role string) (model.Account, error) {
	a.logger.Debug("Auth service: registering account",
		"email", email)

	if name == "" || email == "" || password == "" {
		return model.Account{}, model.ErrMissingFields
	}

	_, err := a.accountStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: account already exists",
			"email", email)
		return model.Account{}, model.ErrDuplicateEmail
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := model.Account{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	account, err = a.accountStore.Create(ctx, account)
	if err != nil {
		a.logger.Error("Auth service: failed to create account",
			"email", email,
			"error", err.Error())
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.Account{}, model.ErrDuplicateEmail
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	if msg, err := mail.WelcomeMessage(account); err == nil {
		a.dispatcher.Enqueue(ctx, msg)
	} else {
		a.logger.Error("Auth service: failed to build welcome mail",
			"email", email,
			"error", err.Error())
	}

	a.logger.Info("Auth service: account registered",
		"email", email,
		"account_id", account.ID)

	return account, nil
}

// Login verifies the (email, role, password) triple and issues a session
// token. Unknown account and wrong password collapse to the same error so
// callers cannot enumerate emails; deactivation is reported distinctly.
func (a *Auth) Login(ctx context.Context, email, password, role string, keepSignedIn bool) (token string, firstName string, err error) {
	a.logger.Debug("Auth service: login attempt",
		"email", email,
		"role", role)

	account, err := a.accountStore.GetByEmailAndRole(ctx, email, role)
	if errors.Is(err, model.ErrNotFound) {
		return "", "", model.ErrInvalidCredentials
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to get account by email and role: %w", err)
	}

	if !account.IsActive {
		a.logger.Info("Auth service: login on deactivated account",
			"account_id", account.ID)
		return "", "", model.ErrAccountDeactivated
	}

	if !a.hasher.Verify(password, account.PasswordHash) {
		return "", "", model.ErrInvalidCredentials
	}

	token, err = a.sessions.IssueSession(account.ID, account.Role, keepSignedIn)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: login succeeded",
		"account_id", account.ID,
		"extended", keepSignedIn)

	return token, account.FirstName(), nil
}
