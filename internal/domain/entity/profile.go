// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the core identity entity, mirroring one registered user of the
// irrigation dashboard. It is created on sign-up and only ever updated, never
// deleted, by this application.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`      // Primary contact email, also the login identifier.
	Name      string    `json:"nombre"`     // Display name shown in the dashboard header.
	Role      Role      `json:"rol"`        // Access role; every account starts as RoleUser.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
