package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/qzplatform/account-service/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `id, name, email, password_hash, role, is_active, reset_token, reset_token_expiry, created_at, updated_at`

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account, err := r.scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByEmailAndRole(ctx context.Context, email, role string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 AND role = $2`

	account, err := r.scanAccount(r.db.QueryRow(ctx, query, email, role))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email and role: %w", err)
	}

	return account, nil
}

// GetByResetToken applies the expiry predicate in the query so a token at or
// past its expiry never matches.
func (r *AccountRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE reset_token = $1 AND reset_token_expiry > $2`

	account, err := r.scanAccount(r.db.QueryRow(ctx, query, token, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by reset token: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := r.scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		account, err := r.scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (id, name, email, password_hash, role, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + accountColumns

	saved, err := r.scanAccount(r.db.QueryRow(ctx, query,
		account.ID, account.Name, account.Email, account.PasswordHash, account.Role,
		account.IsActive, account.CreatedAt, account.UpdatedAt,
	))
	if err != nil {
		// The unique constraint is the final authority on email uniqueness;
		// the service-level existence check is just an early exit.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Account{}, model.ErrDuplicateEmail
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) Save(ctx context.Context, account model.Account) (model.Account, error) {
	query := `UPDATE accounts
			  SET name = $2, email = $3, password_hash = $4, role = $5, is_active = $6,
				  reset_token = $7, reset_token_expiry = $8, updated_at = $9
			  WHERE id = $1
			  RETURNING ` + accountColumns

	saved, err := r.scanAccount(r.db.QueryRow(ctx, query,
		account.ID, account.Name, account.Email, account.PasswordHash, account.Role,
		account.IsActive, account.ResetToken, account.ResetTokenExpiry, time.Now(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to save account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *AccountRepository) scanAccount(row pgx.Row) (model.Account, error) {
	var account model.Account
	err := row.Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.Role,
		&account.IsActive, &account.ResetToken, &account.ResetTokenExpiry,
		&account.CreatedAt, &account.UpdatedAt,
	)
	return account, err
}
