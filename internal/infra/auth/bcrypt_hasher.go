// Package auth implements the credential and session services behind
// the admin console.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"atelier/internal/domain/service"
	"atelier/internal/errors"
)

// bcryptHasher hashes admin passwords with bcrypt at the default cost.
// bcrypt salts every hash itself, so equal passwords never collide.
type bcryptHasher struct{}

// NewBcryptHasher is the constructor for bcryptHasher.
func NewBcryptHasher() service.PasswordHasher {
	return &bcryptHasher{}
}

// Hash produces a salted bcrypt hash of the plaintext password.
func (h *bcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return string(hashed), nil
}

// Check reports whether the plaintext password matches the stored hash.
// Malformed hashes read as a mismatch.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
