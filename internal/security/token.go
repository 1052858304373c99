package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
)

// confirmationTokenBytes yields a 64-character hex token.
const confirmationTokenBytes = 32

// NewConfirmationToken generates a high-entropy single-use token for an
// invitation record. Tokens are never reused across records.
func NewConfirmationToken() (string, error) {
	buf := make([]byte, confirmationTokenBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// TokenEqual compares a supplied token against the stored one in constant
// time.
func TokenEqual(supplied, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(stored)) == 1
}
