package credentials

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes is the reset token entropy. 32 bytes encode to 64 hex chars.
const resetTokenBytes = 32

// GenerateResetToken produces a cryptographically random opaque token for
// password-reset links. The token is a stored secret and must never be logged.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
