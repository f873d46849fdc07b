// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"riego/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput defines the editable profile fields.
type UpdateProfileInput struct {
	Name string
}

// --- Output DTOs ---

// SessionOutput returns the issued tokens plus the profile they belong to.
// Both signup and login produce one, so a fresh account lands on the
// dashboard without a second login step.
type SessionOutput struct {
	AccessToken  string
	RefreshToken string
	Profile      *entity.Profile
}

// RefreshOutput returns the newly issued access token. The refresh token
// itself is left unchanged.
type RefreshOutput struct {
	AccessToken string
}

// AuthUsecase defines the interface for identity and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Signup(ctx context.Context, input SignupInput) (*SessionOutput, error)
	Login(ctx context.Context, input LoginInput) (*SessionOutput, error)
	GetSession(ctx context.Context, profileID uuid.UUID) (*entity.Profile, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)
	Logout(ctx context.Context, refreshToken string) error
	UpdateProfile(ctx context.Context, profileID uuid.UUID, input UpdateProfileInput) (*entity.Profile, error)
}
