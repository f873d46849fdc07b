package impl

import (
	"context"
	"testing"
	"time"

	"riego/internal/domain/entity"
	domainerrors "riego/internal/domain/errors"
	"riego/internal/domain/repository"
	mockRepo "riego/internal/mocks/repository"
	"riego/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDeviceServiceForTest(
	txManager repository.TransactionManager,
	statusRepo repository.DeviceStatusRepository,
	now time.Time,
) *deviceService {
	return &deviceService{
		txManager:  txManager,
		statusRepo: statusRepo,
		deviceCfg:  testDeviceConfig(),
		logger:     discardLogger(),
		now:        func() time.Time { return now },
	}
}

func usecaseDeviceReport(pump entity.PumpState, ip string) usecase.DeviceReportInput {
	return usecase.DeviceReportInput{PumpState: pump, IPAddress: &ip}
}

func TestDeviceService_GetStatus_NotReported(t *testing.T) {
	ctx := context.Background()
	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	service := newDeviceServiceForTest(nil, statusRepo, time.Now())

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(nil, repository.ErrDeviceStatusNotFound)

	_, err := service.GetStatus(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceStatusNotFound)
}

func TestDeviceService_Report_FirstHeartbeat(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(7, 0)

	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	historyRepo := mockRepo.NewMockHistoryRepository(t)
	txManager.Factory = factory

	service := newDeviceServiceForTest(txManager, statusRepo, now)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	factory.On("DeviceStatusRepo").Return(statusRepo)
	factory.On("HistoryRepo").Return(historyRepo)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(nil, repository.ErrDeviceStatusNotFound)
	statusRepo.On("Upsert", ctx, mock.MatchedBy(func(status *entity.DeviceStatus) bool {
		return status.DeviceID == testDeviceID &&
			status.PumpState == entity.PumpOff &&
			status.ConnectionState == entity.ConnectionOnline &&
			status.LastPingAt != nil && status.LastPingAt.Equal(now) &&
			status.WateringStartedAt == nil
	})).Return(nil)

	reported, err := service.Report(ctx, usecaseDeviceReport(entity.PumpOff, "192.168.1.50"))

	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionOnline, reported.ConnectionState)
}

func TestDeviceService_Report_PumpOnOpensAutomaticCycle(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(7, 0)

	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	historyRepo := mockRepo.NewMockHistoryRepository(t)
	txManager.Factory = factory

	service := newDeviceServiceForTest(txManager, statusRepo, now)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	factory.On("DeviceStatusRepo").Return(statusRepo)
	factory.On("HistoryRepo").Return(historyRepo)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOff}, nil)
	statusRepo.On("Upsert", ctx, mock.MatchedBy(func(status *entity.DeviceStatus) bool {
		return status.PumpState == entity.PumpOn &&
			status.WateringStartedAt != nil && status.WateringStartedAt.Equal(now)
	})).Return(nil)

	historyRepo.On("FindLatestOpenAutomatic", ctx).Return(nil, repository.ErrHistoryEntryNotFound)
	historyRepo.On("Create", ctx, mock.MatchedBy(func(entry *entity.HistoryEntry) bool {
		return entry.Kind == entity.HistoryKindAutomatic &&
			entry.StartedAt.Equal(now) &&
			entry.EndedAt == nil
	})).Return(nil)

	_, err := service.Report(ctx, usecaseDeviceReport(entity.PumpOn, "192.168.1.50"))

	require.NoError(t, err)
}

func TestDeviceService_Report_PumpOffClosesAutomaticCycle(t *testing.T) {
	ctx := context.Background()
	startedAt := wednesdayAt(7, 0)
	now := wednesdayAt(7, 15)

	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	historyRepo := mockRepo.NewMockHistoryRepository(t)
	txManager.Factory = factory

	service := newDeviceServiceForTest(txManager, statusRepo, now)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	factory.On("DeviceStatusRepo").Return(statusRepo)
	factory.On("HistoryRepo").Return(historyRepo)

	statusRepo.On("FindByDeviceID", ctx, testDeviceID).
		Return(&entity.DeviceStatus{DeviceID: testDeviceID, PumpState: entity.PumpOn, WateringStartedAt: &startedAt}, nil)
	statusRepo.On("Upsert", ctx, mock.MatchedBy(func(status *entity.DeviceStatus) bool {
		return status.PumpState == entity.PumpOff && status.WateringStartedAt == nil
	})).Return(nil)

	openEntry := &entity.HistoryEntry{ID: uuid.New(), Kind: entity.HistoryKindAutomatic, StartedAt: startedAt}
	historyRepo.On("FindLatestOpenAutomatic", ctx).Return(openEntry, nil)
	historyRepo.On("Close", ctx, openEntry.ID, now, 900).Return(nil)

	_, err := service.Report(ctx, usecaseDeviceReport(entity.PumpOff, "192.168.1.50"))

	require.NoError(t, err)
}

func TestDeviceService_MarkStaleOffline(t *testing.T) {
	ctx := context.Background()
	now := wednesdayAt(12, 0)

	statusRepo := mockRepo.NewMockDeviceStatusRepository(t)
	service := newDeviceServiceForTest(nil, statusRepo, now)

	statusRepo.On("MarkOffline", ctx, testDeviceID, now.Add(-30*time.Second)).
		Return(int64(1), nil)

	changed, err := service.MarkStaleOffline(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)
}
