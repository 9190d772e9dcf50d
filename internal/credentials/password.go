package credentials

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tempPasswordBytes is the temporary password entropy. 8 bytes encode to
// 16 hex chars.
const tempPasswordBytes = 8

// GenerateTempPassword produces a random plaintext password for provisioned
// accounts. It is mailed to the account owner once and expected to be changed
// at first login. Self-registration never uses it.
func GenerateTempPassword() (string, error) {
	buf := make([]byte, tempPasswordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate temporary password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
