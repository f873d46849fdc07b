// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"net/mail"
	"time"

	deliverycontext "riego/internal/delivery/context"
	"riego/internal/domain/entity"
	domainerrors "riego/internal/domain/errors"
	"riego/internal/domain/repository"
	"riego/internal/domain/service"
	"riego/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxEmailLength = 255
	maxNameLength  = 100
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	profileRepo  repository.ProfileRepository
	authRepo     repository.AuthRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProfileRepo  repository.ProfileRepository
	AuthRepo     repository.AuthRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		profileRepo:  params.ProfileRepo,
		authRepo:     params.AuthRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new account: one profile plus its email credential,
// created in a single transaction. The new session's tokens are issued right
// away so the client lands on the dashboard without a second login step.
func (srv *authService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email))

	// All validation happens before any store call.
	if err := validateSignupInput(input); err != nil {
		srv.log(ctx).Warn("Signup validation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during signup", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	// bcrypt is CPU-bound, hash outside the transaction.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	var newProfile *entity.Profile
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()
		authRepo := repoFactory.AuthRepo()

		_, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyRegistered, "email already registered")
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
		}

		newProfile = &entity.Profile{
			Email: input.Email,
			Name:  input.Name,
			Role:  entity.RoleUser,
		}
		if err := profileRepo.Create(ctx, newProfile); err != nil {
			return errors.Wrap(err, "failed to create profile during signup")
		}

		newAuth := &entity.Authentication{
			ProfileID:      newProfile.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}

		return errors.Wrap(authRepo.CreateAuthentication(ctx, newAuth), "failed to create authentication during signup")
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	output, err := srv.issueSession(ctx, newProfile)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session after signup", slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("Signup completed", slog.Any("profileID", newProfile.ID))

	return output, nil
}

// Login verifies the email credential and issues a fresh session. Unknown
// email and wrong password collapse into the same invalid-credentials error.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	if input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("La contraseña es requerida")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("El email no es válido")
	}

	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	profile, err := srv.profileRepo.FindByID(ctx, authRecord.ProfileID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile during login")
	}

	output, err := srv.issueSession(ctx, profile)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session after login", slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("Login completed", slog.Any("profileID", profile.ID))

	return output, nil
}

// GetSession returns the stored profile of the authenticated caller.
func (srv *authService) GetSession(ctx context.Context, profileID uuid.UUID) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProfileNotFound, "session profile not found")
		}

		return nil, errors.Wrap(err, "failed to find session profile")
	}

	return profile, nil
}

// Refresh issues a new access token from a valid refresh token. The refresh
// token itself remains unchanged, there is no rotation.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Debug("Refreshing access token")

	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "invalid refresh token")
	}

	tokenHash := srv.tokenService.HashToken(refreshToken)

	stored, err := srv.authRepo.FindRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found")
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token expired")
	}

	profile, err := srv.profileRepo.FindByID(ctx, claims.ProfileID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile during refresh")
	}

	accessToken, _, err := srv.tokenService.GenerateTokens(profile.ID, []string{profile.Role.String()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate new access token")
	}

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// Logout ends the session belonging to the given refresh token. A token that
// is already gone is not an error; logout is idempotent.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	srv.log(ctx).Info("Logging out")

	if _, err := srv.tokenService.ValidateRefreshToken(refreshToken); err != nil {
		// Even if the token is invalid, proceed to delete it from the database.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(refreshToken)

	if err := srv.authRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil
		}

		srv.log(ctx).Error("Failed to delete refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete refresh token")
	}

	return nil
}

// UpdateProfile changes the caller's display name.
func (srv *authService) UpdateProfile(ctx context.Context, profileID uuid.UUID, input usecase.UpdateProfileInput) (*entity.Profile, error) {
	if input.Name == "" || len(input.Name) > maxNameLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("El nombre debe tener entre 1 y 100 caracteres")
	}

	var updated *entity.Profile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		profile, err := profileRepo.FindByID(ctx, profileID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return errors.Wrap(domainerrors.ErrProfileNotFound, "profile not found")
			}

			return errors.Wrap(err, "failed to find profile")
		}

		profile.Name = input.Name
		if err := profileRepo.Update(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}

		updated = profile

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("profileID", profileID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("Profile updated", slog.Any("profileID", profileID))

	return updated, nil
}

// issueSession generates the token pair for a profile and stores the refresh
// token's hash.
func (srv *authService) issueSession(ctx context.Context, profile *entity.Profile) (*usecase.SessionOutput, error) {
	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(profile.ID, []string{profile.Role.String()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	newRefreshToken := &entity.RefreshToken{
		ProfileID: profile.ID,
		TokenHash: srv.tokenService.HashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := srv.authRepo.CreateRefreshToken(ctx, newRefreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.SessionOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		Profile:      profile,
	}, nil
}

// validateSignupInput checks the structural rules of a signup request.
// Password strength has its own validator.
func validateSignupInput(input usecase.SignupInput) error {
	if _, err := mail.ParseAddress(input.Email); err != nil || len(input.Email) > maxEmailLength {
		return domainerrors.ErrValidationFailed.WithDetails("El email no es válido")
	}
	if input.Name == "" || len(input.Name) > maxNameLength {
		return domainerrors.ErrValidationFailed.WithDetails("El nombre debe tener entre 1 y 100 caracteres")
	}

	return nil
}
