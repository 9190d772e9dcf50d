// Package credentials provides password hashing and secret generation
// primitives for the account service.
package credentials

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the bcrypt work factor. Cost 10 keeps a single verification
// well under 100ms on current hardware.
const BcryptCost = 10

// Hasher hashes and verifies account passwords.
type Hasher interface {
	// Hash produces a salted one-way hash of the password. It fails only on
	// internal bcrypt failure, never on password content.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the hash. A mismatch is a
	// normal false result, not an error.
	Verify(password, hash string) bool
}

// BcryptHasher implements Hasher using bcrypt. The salt is embedded in the
// produced hash, so verification is self-contained.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the default work factor.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: BcryptCost}
}

// Hash produces a salted bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the password matches the hash.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
