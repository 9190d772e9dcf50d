package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByEmailAndRole(ctx context.Context, email, role string) (Account, error)
	// GetByResetToken matches only accounts whose reset token expiry is
	// strictly after now. Expired tokens never match.
	GetByResetToken(ctx context.Context, token string, now time.Time) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	List(ctx context.Context) ([]Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	Save(ctx context.Context, account Account) (Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Account represents a stored platform account with its credentials.
// ResetToken and ResetTokenExpiry are either both set or both nil.
type Account struct {
	ID               uuid.UUID
	Name             string
	Email            string
	PasswordHash     string
	Role             string
	IsActive         bool
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FirstName returns the first word of the account name, used in mail salutations.
func (a Account) FirstName() string {
	for i := 0; i < len(a.Name); i++ {
		if a.Name[i] == ' ' {
			return a.Name[:i]
		}
	}
	return a.Name
}
