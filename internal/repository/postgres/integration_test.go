//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/qzplatform/account-service/internal/model"
	repo "github.com/qzplatform/account-service/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "accounts_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/accounts_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newAccount(email string) model.Account {
	now := time.Now()
	return model.Account{
		ID:           uuid.New(),
		Name:         "Ada Lovelace",
		Email:        email,
		PasswordHash: "$2a$10$hashhashhashhashhashha",
		Role:         "standard",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAccountRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	accounts := repo.NewAccountRepository(conn)

	created, err := accounts.Create(ctx, newAccount("ada@qz.test"))
	require.NoError(t, err)
	assert.Equal(t, "ada@qz.test", created.Email)
	assert.True(t, created.IsActive)
	assert.Nil(t, created.ResetToken)

	byEmail, err := accounts.GetByEmail(ctx, "ada@qz.test")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = accounts.GetByEmailAndRole(ctx, "ada@qz.test", "administrator")
	assert.ErrorIs(t, err, model.ErrNotFound)

	byBoth, err := accounts.GetByEmailAndRole(ctx, "ada@qz.test", "standard")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byBoth.ID)

	listed, err := accounts.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, listed)

	require.NoError(t, accounts.Delete(ctx, created.ID))
	_, err = accounts.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, accounts.Delete(ctx, created.ID), model.ErrNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	accounts := repo.NewAccountRepository(conn)

	first, err := accounts.Create(ctx, newAccount("dup@qz.test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = accounts.Delete(ctx, first.ID) })

	_, err = accounts.Create(ctx, newAccount("dup@qz.test"))
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestAccountRepository_ResetTokenExpiry(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	accounts := repo.NewAccountRepository(conn)

	created, err := accounts.Create(ctx, newAccount("reset@qz.test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = accounts.Delete(ctx, created.ID) })

	token := "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"
	expiry := time.Now().Add(time.Hour)
	created.ResetToken = &token
	created.ResetTokenExpiry = &expiry
	saved, err := accounts.Save(ctx, created)
	require.NoError(t, err)
	require.NotNil(t, saved.ResetToken)

	// Pending token matches before expiry.
	found, err := accounts.GetByResetToken(ctx, token, time.Now())
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// The same token at or past expiry never matches.
	_, err = accounts.GetByResetToken(ctx, token, expiry)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = accounts.GetByResetToken(ctx, token, expiry.Add(time.Minute))
	assert.ErrorIs(t, err, model.ErrNotFound)

	// Clearing both fields returns the account to idle.
	saved.ResetToken = nil
	saved.ResetTokenExpiry = nil
	cleared, err := accounts.Save(ctx, saved)
	require.NoError(t, err)
	assert.Nil(t, cleared.ResetToken)
	assert.Nil(t, cleared.ResetTokenExpiry)

	_, err = accounts.GetByResetToken(ctx, token, time.Now())
	assert.ErrorIs(t, err, model.ErrNotFound)
}
