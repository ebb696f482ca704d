package security

import (
	"errors"

	"classbook-svc/src/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a bcrypt hash with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

// CheckPassword validates the cleartext password against the stored hash.
// A mismatch is reported as models.ErrBadCredentials.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return models.ErrBadCredentials
		}
		return err
	}
	return nil
}
