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

// Account handles administrator-facing account management, including single
// account provisioning with a generated temporary password.
type Account struct {
	accountStore model.AccountStore
	hasher       credentials.Hasher
	dispatcher   model.MailDispatcher
	logger       *logger.Logger
}

func NewAccount(
	accountStore model.AccountStore,
	hasher credentials.Hasher,
	dispatcher model.MailDispatcher,
	logger *logger.Logger,
) *Account {
	return &Account{
		accountStore: accountStore,
		hasher:       hasher,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// Provision creates an account with a generated temporary password and mails
// the password to the owner. The account is committed before the mail is
// attempted, and delivery failure never unwinds the creation.
func (s *Account) Provision(ctx context.Context, params model.CreateAccountParams) (model.Account, error) {
	if params.Name == "" || params.Email == "" {
		return model.Account{}, model.ErrMissingFields
	}

	_, err := s.accountStore.GetByEmail(ctx, params.Email)
	if err == nil {
		return model.Account{}, model.ErrDuplicateEmail
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	tempPassword, err := credentials.GenerateTempPassword()
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash temporary password: %w", err)
	}

	now := time.Now()
	account := model.Account{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Role:         params.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	account, err = s.accountStore.Create(ctx, account)
	if err != nil {
		// The store's unique constraint is the final authority; a concurrent
		// writer may win the race past the existence check above.
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.Account{}, model.ErrDuplicateEmail
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	if msg, err := mail.TemporaryPasswordMessage(account, tempPassword); err == nil {
		s.dispatcher.Enqueue(ctx, msg)
	} else {
		s.logger.Error("Account service: failed to build temporary password mail",
			"account_id", account.ID,
			"error", err.Error())
	}

	s.logger.Info("Account service: account provisioned",
		"account_id", account.ID,
		"email", account.Email)

	return account, nil
}

// List returns all accounts.
func (s *Account) List(ctx context.Context) ([]model.Account, error) {
	accounts, err := s.accountStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Get returns the account with the given id.
func (s *Account) Get(ctx context.Context, id uuid.UUID) (model.Account, error) {
	account, err := s.accountStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

// Update merges non-empty fields into the account, saves it and notifies the
// owner of the change.
func (s *Account) Update(ctx context.Context, id uuid.UUID, params model.CreateAccountParams) (model.Account, error) {
	account, err := s.accountStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	if params.Name != "" {
		account.Name = params.Name
	}
	if params.Email != "" {
		account.Email = params.Email
	}
	if params.Role != "" {
		account.Role = params.Role
	}

	account, err = s.accountStore.Save(ctx, account)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to save account: %w", err)
	}

	if msg, err := mail.AccountUpdatedMessage(account); err == nil {
		s.dispatcher.Enqueue(ctx, msg)
	} else {
		s.logger.Error("Account service: failed to build update mail",
			"account_id", account.ID,
			"error", err.Error())
	}

	s.logger.Info("Account service: account updated",
		"account_id", account.ID)

	return account, nil
}

// Delete removes the account with the given id.
func (s *Account) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.accountStore.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("Account service: account deleted",
		"account_id", id)

	return nil
}
