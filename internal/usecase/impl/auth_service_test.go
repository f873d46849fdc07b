package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"riego/internal/domain/entity"
	domainerrors "riego/internal/domain/errors"
	"riego/internal/domain/repository"
	domainservice "riego/internal/domain/service"
	mockRepo "riego/internal/mocks/repository"
	mockSvc "riego/internal/mocks/service"
	"riego/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceMocks struct {
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	profileRepo  *mockRepo.MockProfileRepository
	authRepo     *mockRepo.MockAuthRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func newAuthServiceForTest(t *testing.T) (*authService, *authServiceMocks) {
	mocks := &authServiceMocks{
		txManager:    mockRepo.NewMockTransactionManager(t),
		factory:      mockRepo.NewMockRepositoryFactory(t),
		profileRepo:  mockRepo.NewMockProfileRepository(t),
		authRepo:     mockRepo.NewMockAuthRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
	}
	mocks.txManager.Factory = mocks.factory

	service := &authService{
		txManager:    mocks.txManager,
		profileRepo:  mocks.profileRepo,
		authRepo:     mocks.authRepo,
		hasher:       mocks.hasher,
		tokenService: mocks.tokenService,
		logger:       discardLogger(),
	}

	return service, mocks
}

func refreshClaims(profileID uuid.UUID) *domainservice.Claims {
	return &domainservice.Claims{ProfileID: profileID, Type: "refresh"}
}

func expectSessionIssued(mocks *authServiceMocks, profileID uuid.UUID) {
	mocks.tokenService.On("GenerateTokens", profileID, []string{"usuario"}).
		Return("access-token", "refresh-token", nil)
	mocks.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	mocks.tokenService.On("GetRefreshTokenDuration").Return(time.Hour * 24 * 7)
	mocks.authRepo.On("CreateRefreshToken", mock.Anything, mock.MatchedBy(func(token *entity.RefreshToken) bool {
		return token.ProfileID == profileID && token.TokenHash == "refresh-hash"
	})).Return(nil)
}

func TestAuthService_Signup_Success(t *testing.T) {
	ctx := context.Background()
	service, mocks := newAuthServiceForTest(t)

	profileID := uuid.New()
	input := usecase.SignupInput{Email: "ana@example.com", Password: "GoodPass1", Name: "Ana"}

	mocks.hasher.On("ValidatePasswordStrength", "GoodPass1").Return(nil)
	mocks.hasher.On("Hash", "GoodPass1").Return("bcrypt-hash", nil)

	mocks.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	mocks.factory.On("ProfileRepo").Return(mocks.profileRepo)
	mocks.factory.On("AuthRepo").Return(mocks.authRepo)

	mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ana@example.com").
		Return(nil, repository.ErrAuthNotFound)
	mocks.profileRepo.On("Create", ctx, mock.MatchedBy(func(profile *entity.Profile) bool {
		return profile.Email == "ana@example.com" && profile.Role == entity.RoleUser
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Profile).ID = profileID
	}).Return(nil)
	mocks.authRepo.On("CreateAuthentication", ctx, mock.MatchedBy(func(auth *entity.Authentication) bool {
		return auth.ProfileID == profileID && auth.PasswordHash == "bcrypt-hash"
	})).Return(nil)

	expectSessionIssued(mocks, profileID)

	output, err := service.Signup(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, profileID, output.Profile.ID)
}

func TestAuthService_Signup_ValidationMatrix(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name  string
		input usecase.SignupInput
	}{
		{"invalid email", usecase.SignupInput{Email: "not-an-email", Password: "GoodPass1", Name: "Ana"}},
		{"overlong email", usecase.SignupInput{Email: strings.Repeat("a", 250) + "@example.com", Password: "GoodPass1", Name: "Ana"}},
		{"empty name", usecase.SignupInput{Email: "ana@example.com", Password: "GoodPass1", Name: ""}},
		{"overlong name", usecase.SignupInput{Email: "ana@example.com", Password: "GoodPass1", Name: strings.Repeat("n", 101)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newAuthServiceForTest(t)

			_, err := service.Signup(ctx, tc.input)

			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestAuthService_Signup_WeakPasswordRejectedBeforeStore(t *testing.T) {
	ctx := context.Background()
	service, mocks := newAuthServiceForTest(t)

	weakErr := domainerrors.ErrValidationFailed.WithDetails("La contraseña debe tener al menos 8 caracteres")
	mocks.hasher.On("ValidatePasswordStrength", "short1A").Return(weakErr)

	_, err := service.Signup(ctx, usecase.SignupInput{Email: "ana@example.com", Password: "short1A", Name: "Ana"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	// No store call may happen before validation passes.
	mocks.profileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	service, mocks := newAuthServiceForTest(t)

	mocks.hasher.On("ValidatePasswordStrength", "GoodPass1").Return(nil)
	mocks.hasher.On("Hash", "GoodPass1").Return("bcrypt-hash", nil)

	mocks.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	mocks.factory.On("ProfileRepo").Return(mocks.profileRepo)
	mocks.factory.On("AuthRepo").Return(mocks.authRepo)

	mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ana@example.com").
		Return(&entity.Authentication{ProfileID: uuid.New()}, nil)

	_, err := service.Signup(ctx, usecase.SignupInput{Email: "ana@example.com", Password: "GoodPass1", Name: "Ana"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	service, mocks := newAuthServiceForTest(t)

	profileID := uuid.New()
	profile := &entity.Profile{ID: profileID, Email: "ana@example.com", Name: "Ana", Role: entity.RoleUser}

	mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ana@example.com").
		Return(&entity.Authentication{ProfileID: profileID, PasswordHash: "bcrypt-hash"}, nil)
	mocks.hasher.On("Check", "GoodPass1", "bcrypt-hash").Return(true)
	mocks.profileRepo.On("FindByID", ctx, profileID).Return(profile, nil)

	expectSessionIssued(mocks, profileID)

	output, err := service.Login(ctx, usecase.LoginInput{Email: "ana@example.com", Password: "GoodPass1"})

	require.NoError(t, err)
	assert.Equal(t, profile, output.Profile)
}

func TestAuthService_Login_UnknownEmailAndBadPasswordLookAlike(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		service, mocks := newAuthServiceForTest(t)

		mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "who@example.com").
			Return(nil, repository.ErrAuthNotFound)

		_, err := service.Login(ctx, usecase.LoginInput{Email: "who@example.com", Password: "GoodPass1"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("bad password", func(t *testing.T) {
		service, mocks := newAuthServiceForTest(t)

		mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "ana@example.com").
			Return(&entity.Authentication{ProfileID: uuid.New(), PasswordHash: "bcrypt-hash"}, nil)
		mocks.hasher.On("Check", "WrongPass1", "bcrypt-hash").Return(false)

		_, err := service.Login(ctx, usecase.LoginInput{Email: "ana@example.com", Password: "WrongPass1"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Login_EmptyPassword(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthServiceForTest(t)

	_, err := service.Login(ctx, usecase.LoginInput{Email: "ana@example.com", Password: ""})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	service, mocks := newAuthServiceForTest(t)

	profileID := uuid.New()
	profile := &entity.Profile{ID: profileID, Role: entity.RoleUser}

	mocks.tokenService.On("ValidateRefreshToken", "refresh-token").
		Return(refreshClaims(profileID), nil)
	mocks.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	mocks.authRepo.On("FindRefreshTokenByHash", ctx, "refresh-hash").
		Return(&entity.RefreshToken{ProfileID: profileID, ExpiresAt: time.Now().Add(time.Hour)}, nil)
	mocks.profileRepo.On("FindByID", ctx, profileID).Return(profile, nil)
	mocks.tokenService.On("GenerateTokens", profileID, []string{"usuario"}).
		Return("new-access", "ignored-refresh", nil)

	output, err := service.Refresh(ctx, "refresh-token")

	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	ctx := context.Background()
	service, mocks := newAuthServiceForTest(t)

	profileID := uuid.New()
	mocks.tokenService.On("ValidateRefreshToken", "refresh-token").
		Return(refreshClaims(profileID), nil)
	mocks.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	mocks.authRepo.On("FindRefreshTokenByHash", ctx, "refresh-hash").
		Return(nil, repository.ErrTokenNotFound)

	_, err := service.Refresh(ctx, "refresh-token")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	service, mocks := newAuthServiceForTest(t)

	profileID := uuid.New()
	mocks.tokenService.On("ValidateRefreshToken", "refresh-token").
		Return(refreshClaims(profileID), nil)
	mocks.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	mocks.authRepo.On("FindRefreshTokenByHash", ctx, "refresh-hash").
		Return(&entity.RefreshToken{ProfileID: profileID, ExpiresAt: time.Now().Add(-time.Minute)}, nil)

	_, err := service.Refresh(ctx, "refresh-token")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Logout_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	service, mocks := newAuthServiceForTest(t)

	mocks.tokenService.On("ValidateRefreshToken", "refresh-token").
		Return(refreshClaims(uuid.New()), nil)
	mocks.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	mocks.authRepo.On("DeleteRefreshTokenByHash", ctx, "refresh-hash").
		Return(repository.ErrTokenNotFound)

	err := service.Logout(ctx, "refresh-token")

	require.NoError(t, err)
}

func TestAuthService_UpdateProfile_Success(t *testing.T) {
	ctx := context.Background()
	service, mocks := newAuthServiceForTest(t)

	profileID := uuid.New()
	profile := &entity.Profile{ID: profileID, Email: "ana@example.com", Name: "Ana", Role: entity.RoleUser}

	mocks.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	mocks.factory.On("ProfileRepo").Return(mocks.profileRepo)

	mocks.profileRepo.On("FindByID", ctx, profileID).Return(profile, nil)
	mocks.profileRepo.On("Update", ctx, mock.MatchedBy(func(updated *entity.Profile) bool {
		return updated.Name == "Ana María"
	})).Return(nil)

	updated, err := service.UpdateProfile(ctx, profileID, usecase.UpdateProfileInput{Name: "Ana María"})

	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
}

func TestAuthService_UpdateProfile_RejectsBadName(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthServiceForTest(t)

	_, err := service.UpdateProfile(ctx, uuid.New(), usecase.UpdateProfileInput{Name: ""})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
