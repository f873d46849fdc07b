package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"riego/config"
	"riego/internal/domain/entity"
	domainerrors "riego/internal/domain/errors"
	"riego/internal/domain/repository"
	mockRepo "riego/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDeviceID = "ESP32_QUINTA_ESTACION"

// wednesdayAt returns a fixed Wednesday with the given time of day.
func wednesdayAt(hour, minute int) time.Time {
	return time.Date(2026, 8, 26, hour, minute, 0, 0, time.UTC)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDeviceConfig() config.DeviceConfig {
	return config.DeviceConfig{
		ID:              testDeviceID,
		MonitorInterval: 5 * time.Second,
		OfflineAfter:    30 * time.Second,
	}
}

func newDashboardServiceForTest(
	txManager repository.TransactionManager,
	statusRepo repository.DeviceStatusRepository,
	scheduleRepo repository.ScheduleRepository,
	historyRepo repository.HistoryRepository,
	now time.Time,
) *dashboardService {
	return &dashboardService{
		txManager:    txManager,
		statusRepo:   statusRepo,
		scheduleRepo: scheduleRepo,
		historyRepo:  historyRepo,
		deviceCfg:    testDeviceConfig(),
		logger:       discardLogger(),
		now:          func() time.Time { return now },
	}
}

func scheduleAt(hour, minute int, weekdays ...int) *entity.Schedule {
	return &entity.Schedule{
		ID:              uuid.New(),
		Hour:            hour,
		Minute:          minute,
		DurationSeconds: 600,
		Weekdays:        weekdays,
		Active:          true,
	}
}

func TestDashboardService_GetOverview_NextScheduleSameDay(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(9, 0)

	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	scheduleRepo := mockRepo.NewMockScheduleRepository(t)
	historyRepo := mockRepo.NewMockHistoryRepository(t)

	service := newDashboardServiceForTest(nil, statusRepo, scheduleRepo, historyRepo, now)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOff}, nil)

	morning := scheduleAt(8, 0, int(time.Wednesday))
	afternoon := scheduleAt(14, 30, int(time.Wednesday))
	scheduleRepo.On("ListActiveForWeekday", ctx, time.Wednesday).
		Return([]*entity.Schedule{morning, afternoon}, nil)

	historyRepo.On("ListStartedBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*entity.HistoryEntry{}, nil)

	output, err := service.GetOverview(ctx)

	require.NoError(t, err)
	require.NotNil(t, output.NextSchedule)
	// 08:00 already passed at 09:00; 14:30 is the earliest remaining match.
	assert.Equal(t, afternoon.ID, output.NextSchedule.ID)
}

func TestDashboardService_GetOverview_NoWraparound(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(15, 0)

	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	scheduleRepo := mockRepo.NewMockScheduleRepository(t)
	historyRepo := mockRepo.NewMockHistoryRepository(t)

	service := newDashboardServiceForTest(nil, statusRepo, scheduleRepo, historyRepo, now)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOff}, nil)

	// Both of today's schedules have passed; tomorrow's are not considered.
	scheduleRepo.On("ListActiveForWeekday", ctx, time.Wednesday).
		Return([]*entity.Schedule{scheduleAt(8, 0, int(time.Wednesday)), scheduleAt(14, 30, int(time.Wednesday))}, nil)

	historyRepo.On("ListStartedBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*entity.HistoryEntry{}, nil)

	output, err := service.GetOverview(ctx)

	require.NoError(t, err)
	assert.Nil(t, output.NextSchedule)
}

func TestDashboardService_GetOverview_SameMinuteDoesNotMatch(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(14, 30)

	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	scheduleRepo := mockRepo.NewMockScheduleRepository(t)
	historyRepo := mockRepo.NewMockHistoryRepository(t)

	service := newDashboardServiceForTest(nil, statusRepo, scheduleRepo, historyRepo, now)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOff}, nil)

	// A schedule firing exactly now is not "next"; the comparison is strict.
	scheduleRepo.On("ListActiveForWeekday", ctx, time.Wednesday).
		Return([]*entity.Schedule{scheduleAt(14, 30, int(time.Wednesday))}, nil)

	historyRepo.On("ListStartedBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*entity.HistoryEntry{}, nil)

	output, err := service.GetOverview(ctx)

	require.NoError(t, err)
	assert.Nil(t, output.NextSchedule)
}

func TestDashboardService_GetOverview_TodayStats(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(18, 0)

	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	scheduleRepo := mockRepo.NewMockScheduleRepository(t)
	historyRepo := mockRepo.NewMockHistoryRepository(t)

	service := newDashboardServiceForTest(nil, statusRepo, scheduleRepo, historyRepo, now)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOff}, nil)
	scheduleRepo.On("ListActiveForWeekday", ctx, time.Wednesday).
		Return([]*entity.Schedule{}, nil)

	duration := 300
	historyRepo.On("ListStartedBetween", ctx,
		time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 26, 23, 59, 59, 0, time.UTC)).
		Return([]*entity.HistoryEntry{
			{ID: uuid.New(), DurationSeconds: &duration},
			{ID: uuid.New(), DurationSeconds: &duration},
			{ID: uuid.New(), DurationSeconds: nil}, // still running, counts as zero seconds
		}, nil)

	output, err := service.GetOverview(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, output.TodayStats.Count)
	assert.Equal(t, 600, output.TodayStats.TotalSeconds)
}

func TestDashboardService_TogglePump_On(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(10, 0)

	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	historyRepo := mockRepo.NewMockHistoryRepository(t)
	txManager.Factory = factory

	service := newDashboardServiceForTest(txManager, statusRepo, nil, historyRepo, now)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	factory.On("DeviceStatusRepo").Return(statusRepo)
	factory.On("HistoryRepo").Return(historyRepo)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOff}, nil).Once()
	statusRepo.On("UpdatePump", ctx, testDeviceID, entity.PumpOn, &now).Return(nil)
	historyRepo.On("Create", ctx, mock.MatchedBy(func(entry *entity.HistoryEntry) bool {
		return entry.Kind == entity.HistoryKindManual &&
			entry.State == entity.HistoryStateCompleted &&
			entry.StartedAt.Equal(now) &&
			entry.EndedAt == nil
	})).Return(nil)

	// Re-fetch after commit.
	startedAt := now
	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOn, WateringStartedAt: &startedAt}, nil).Once()
	historyRepo.On("ListStartedBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*entity.HistoryEntry{{ID: uuid.New()}}, nil)

	output, err := service.TogglePump(ctx)

	require.NoError(t, err)
	assert.Equal(t, entity.PumpOn, output.Status.PumpState)
	assert.Equal(t, 1, output.TodayStats.Count)
}

func TestDashboardService_TogglePump_OffClosesManualEntry(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(10, 10)
	startedAt := wednesdayAt(10, 0)

	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	historyRepo := mockRepo.NewMockHistoryRepository(t)
	txManager.Factory = factory

	service := newDashboardServiceForTest(txManager, statusRepo, nil, historyRepo, now)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	factory.On("DeviceStatusRepo").Return(statusRepo)
	factory.On("HistoryRepo").Return(historyRepo)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOn, WateringStartedAt: &startedAt}, nil).Once()
	statusRepo.On("UpdatePump", ctx, testDeviceID, entity.PumpOff, (*time.Time)(nil)).Return(nil)

	openEntry := &entity.HistoryEntry{ID: uuid.New(), Kind: entity.HistoryKindManual, StartedAt: startedAt}
	historyRepo.On("FindLatestOpenManual", ctx).Return(openEntry, nil)
	historyRepo.On("Close", ctx, openEntry.ID, now, 600).Return(nil)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOff}, nil).Once()
	historyRepo.On("ListStartedBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*entity.HistoryEntry{}, nil)

	output, err := service.TogglePump(ctx)

	require.NoError(t, err)
	assert.Equal(t, entity.PumpOff, output.Status.PumpState)
}

func TestDashboardService_TogglePump_OffToleratesNoOpenEntry(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(10, 10)

	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	historyRepo := mockRepo.NewMockHistoryRepository(t)
	txManager.Factory = factory

	service := newDashboardServiceForTest(txManager, statusRepo, nil, historyRepo, now)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	factory.On("DeviceStatusRepo").Return(statusRepo)
	factory.On("HistoryRepo").Return(historyRepo)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOn}, nil).Once()
	statusRepo.On("UpdatePump", ctx, testDeviceID, entity.PumpOff, (*time.Time)(nil)).Return(nil)
	historyRepo.On("FindLatestOpenManual", ctx).Return(nil, repository.ErrHistoryEntryNotFound)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOff}, nil).Once()
	historyRepo.On("ListStartedBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]*entity.HistoryEntry{}, nil)

	_, err := service.TogglePump(ctx)

	require.NoError(t, err)
}

func TestDashboardService_TogglePump_FailsWithoutStatusRow(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(10, 0)

	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	txManager.Factory = factory

	service := newDashboardServiceForTest(txManager, statusRepo, nil, nil, now)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	factory.On("DeviceStatusRepo").Return(statusRepo)
	factory.On("HistoryRepo").Return(mockRepo.NewMockHistoryRepository(t))

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(nil, repository.ErrDeviceStatusNotFound)

	_, err := service.TogglePump(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceStatusNotFound)
}
