// Package crypto holds password hashing and random token helpers.
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor applied to every stored password.
const DefaultCost = 12

// Indirections for exercising error branches in tests.
var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateRandomToken returns length random bytes, hex encoded, so the
// result is 2*length characters long.
func GenerateRandomToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := randomRead(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
