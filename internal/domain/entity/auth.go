// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail is the provider name for email/password credentials.
// It is the only provider this service issues itself.
const ProviderTypeEmail = "email"

// Authentication represents a single method of logging in (a credential).
type Authentication struct {
	ID             uuid.UUID // The unique ID for this specific authentication record itself.
	ProfileID      uuid.UUID // Links this authentication method to the Profile it belongs to.
	Provider       string    // The authentication provider; currently always "email".
	ProviderUserID string    // The user's unique ID within the provider (the email address itself).
	PasswordHash   string    // Stores the bcrypt-hashed password.
	CreatedAt      time.Time
}

// RefreshToken represents a long-lived, authorized user session.
// It is used to obtain a new access token after the old one expires.
type RefreshToken struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	TokenHash string    // SHA-256 hash of the raw refresh token for secure comparison.
	ExpiresAt time.Time
	CreatedAt time.Time
}
