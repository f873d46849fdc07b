// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"riego/config"
	domainerrors "riego/internal/domain/errors"
	"riego/internal/domain/service"
)

// Password complexity defaults, applied when no PasswordStrength config is
// present. MaxLength tracks bcrypt's 72-byte input limit.
const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 72
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	strength := config.PasswordStrengthConfig{
		MinLength:        defaultMinPasswordLength,
		MaxLength:        defaultMaxPasswordLength,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
	}
	if cfg != nil && cfg.PasswordStrength != nil {
		strength = *cfg.PasswordStrength
	}

	return &bcryptHasher{cost: cost, strength: strength}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength verifies the configured complexity rules. Messages
// are the localized ones the sign-up form shows, so they travel to the client
// unchanged.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.strength.MinLength {
		return domainerrors.ErrValidationFailed.WithDetails("La contraseña debe tener al menos 8 caracteres")
	}
	if h.strength.MaxLength > 0 && len(password) > h.strength.MaxLength {
		return domainerrors.ErrValidationFailed.WithDetails("La contraseña es demasiado larga")
	}
	if h.strength.RequireUppercase && !containsFunc(password, unicode.IsUpper) {
		return domainerrors.ErrValidationFailed.WithDetails("La contraseña debe contener al menos una mayúscula")
	}
	if h.strength.RequireLowercase && !containsFunc(password, unicode.IsLower) {
		return domainerrors.ErrValidationFailed.WithDetails("La contraseña debe contener al menos una minúscula")
	}
	if h.strength.RequireNumbers && !containsFunc(password, unicode.IsDigit) {
		return domainerrors.ErrValidationFailed.WithDetails("La contraseña debe contener al menos un número")
	}

	return nil
}

func containsFunc(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if fn(r) {
			return true
		}
	}

	return false
}
