// Package repository provides hand-written testify mocks for the domain's
// repository interfaces.
package repository

import (
	"context"
	"time"

	"riego/internal/domain/entity"
	"riego/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// constructorT is what the mock constructors need from *testing.T.
type constructorT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t constructorT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockProfileRepository mocks repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

// NewMockProfileRepository creates a mock wired to the test's lifecycle.
func NewMockProfileRepository(t constructorT) *MockProfileRepository {
	m := &MockProfileRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	args := m.Called(ctx, email)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

// MockAuthRepository mocks repository.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

// NewMockAuthRepository creates a mock wired to the test's lifecycle.
func NewMockAuthRepository(t constructorT) *MockAuthRepository {
	m := &MockAuthRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *MockAuthRepository) FindAuthentication(ctx context.Context, provider string, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	auth, _ := args.Get(0).(*entity.Authentication)

	return auth, args.Error(1)
}

func (m *MockAuthRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthRepository) FindRefreshTokenByHash(ctx context.Context, hash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, hash)
	token, _ := args.Get(0).(*entity.RefreshToken)

	return token, args.Error(1)
}

func (m *MockAuthRepository) DeleteRefreshTokenByHash(ctx context.Context, hash string) error {
	return m.Called(ctx, hash).Error(0)
}

func (m *MockAuthRepository) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthRepository) DeleteRefreshTokensByProfile(ctx context.Context, profileID uuid.UUID) error {
	return m.Called(ctx, profileID).Error(0)
}

// MockDeviceStatusRepository mocks repository.DeviceStatusRepository.
type MockDeviceStatusRepository struct {
	mock.Mock
}

// NewMockDeviceStatusRepository creates a mock wired to the test's lifecycle.
func NewMockDeviceStatusRepository(t constructorT) *MockDeviceStatusRepository {
	m := &MockDeviceStatusRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockDeviceStatusRepository) FindByDeviceID(ctx context.Context, deviceID string) (*entity.DeviceStatus, error) {
	args := m.Called(ctx, deviceID)
	status, _ := args.Get(0).(*entity.DeviceStatus)

	return status, args.Error(1)
}

func (m *MockDeviceStatusRepository) Upsert(ctx context.Context, status *entity.DeviceStatus) error {
	return m.Called(ctx, status).Error(0)
}

func (m *MockDeviceStatusRepository) UpdatePump(ctx context.Context, deviceID string, pump entity.PumpState, wateringStartedAt *time.Time) error {
	return m.Called(ctx, deviceID, pump, wateringStartedAt).Error(0)
}

func (m *MockDeviceStatusRepository) MarkOffline(ctx context.Context, deviceID string, lastPingBefore time.Time) (int64, error) {
	args := m.Called(ctx, deviceID, lastPingBefore)

	return args.Get(0).(int64), args.Error(1)
}

// MockScheduleRepository mocks repository.ScheduleRepository.
type MockScheduleRepository struct {
	mock.Mock
}

// NewMockScheduleRepository creates a mock wired to the test's lifecycle.
func NewMockScheduleRepository(t constructorT) *MockScheduleRepository {
	m := &MockScheduleRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockScheduleRepository) List(ctx context.Context) ([]*entity.Schedule, error) {
	args := m.Called(ctx)
	schedules, _ := args.Get(0).([]*entity.Schedule)

	return schedules, args.Error(1)
}

func (m *MockScheduleRepository) ListActiveForWeekday(ctx context.Context, day time.Weekday) ([]*entity.Schedule, error) {
	args := m.Called(ctx, day)
	schedules, _ := args.Get(0).([]*entity.Schedule)

	return schedules, args.Error(1)
}

func (m *MockScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	args := m.Called(ctx, id)
	schedule, _ := args.Get(0).(*entity.Schedule)

	return schedule, args.Error(1)
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *MockScheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockScheduleRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

// MockHistoryRepository mocks repository.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

// NewMockHistoryRepository creates a mock wired to the test's lifecycle.
func NewMockHistoryRepository(t constructorT) *MockHistoryRepository {
	m := &MockHistoryRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockHistoryRepository) List(ctx context.Context, filter repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	args := m.Called(ctx, filter)
	entries, _ := args.Get(0).([]*entity.HistoryEntry)

	return entries, args.Error(1)
}

func (m *MockHistoryRepository) ListStartedBetween(ctx context.Context, from, to time.Time) ([]*entity.HistoryEntry, error) {
	args := m.Called(ctx, from, to)
	entries, _ := args.Get(0).([]*entity.HistoryEntry)

	return entries, args.Error(1)
}

func (m *MockHistoryRepository) Create(ctx context.Context, entry *entity.HistoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockHistoryRepository) FindLatestOpenManual(ctx context.Context) (*entity.HistoryEntry, error) {
	args := m.Called(ctx)
	entry, _ := args.Get(0).(*entity.HistoryEntry)

	return entry, args.Error(1)
}

func (m *MockHistoryRepository) FindLatestOpenAutomatic(ctx context.Context) (*entity.HistoryEntry, error) {
	args := m.Called(ctx)
	entry, _ := args.Get(0).(*entity.HistoryEntry)

	return entry, args.Error(1)
}

func (m *MockHistoryRepository) Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSeconds int) error {
	return m.Called(ctx, id, endedAt, durationSeconds).Error(0)
}

// MockTransactionManager mocks repository.TransactionManager. When Factory
// is set, Execute runs the callback against it and propagates the callback's
// error, mimicking a real transaction without a database.
type MockTransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

// NewMockTransactionManager creates a mock wired to the test's lifecycle.
func NewMockTransactionManager(t constructorT) *MockTransactionManager {
	m := &MockTransactionManager{}
	register(t, &m.Mock)

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	if m.Factory != nil {
		if err := fn(m.Factory); err != nil {
			return err
		}
	}

	return args.Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a mock wired to the test's lifecycle.
func NewMockRepositoryFactory(t constructorT) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	register(t, &m.Mock)

	return m
}

func (m *MockRepositoryFactory) ProfileRepo() repository.ProfileRepository {
	return m.Called().Get(0).(repository.ProfileRepository)
}

func (m *MockRepositoryFactory) AuthRepo() repository.AuthRepository {
	return m.Called().Get(0).(repository.AuthRepository)
}

func (m *MockRepositoryFactory) DeviceStatusRepo() repository.DeviceStatusRepository {
	return m.Called().Get(0).(repository.DeviceStatusRepository)
}

func (m *MockRepositoryFactory) ScheduleRepo() repository.ScheduleRepository {
	return m.Called().Get(0).(repository.ScheduleRepository)
}

func (m *MockRepositoryFactory) HistoryRepo() repository.HistoryRepository {
	return m.Called().Get(0).(repository.HistoryRepository)
}
