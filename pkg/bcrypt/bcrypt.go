package bcrypt

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = 10

	// MaxPasswordBytes is the longest input bcrypt will hash.
	MaxPasswordBytes = 72
)

// HashPassword returns a salted bcrypt hash of the password. Tests pass
// bcrypt.MinCost to keep runs fast.
func HashPassword(password string, cost int) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// ComparePassword checks a plain text password against a stored hash.
func ComparePassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return fmt.Errorf("password comparison failed: %w", err)
	}
	return nil
}

// VerifyHash reports whether hash is a well formed bcrypt hash.
func VerifyHash(hash string) bool {
	_, err := bcrypt.Cost([]byte(hash))
	return err == nil
}
