// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"riego/config"
	deliverycontext "riego/internal/delivery/context"
	"riego/internal/domain/entity"
	domainerrors "riego/internal/domain/errors"
	"riego/internal/domain/repository"
	"riego/internal/usecase"
	"riego/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deviceService implements the DeviceUsecase interface.
type deviceService struct {
	txManager  repository.TransactionManager
	statusRepo repository.DeviceStatusRepository
	deviceCfg  config.DeviceConfig
	logger     *slog.Logger
	now        func() time.Time
}

// DeviceServiceParams holds dependencies for deviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	StatusRepo repository.DeviceStatusRepository
	Config     *config.Config
	Logger     *slog.Logger
}

// NewDeviceService is the constructor for deviceService.
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		txManager:  params.TxManager,
		statusRepo: params.StatusRepo,
		deviceCfg:  params.Config.Device,
		logger:     params.Logger,
		now:        time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetStatus retrieves the single status row of the configured device.
// Clients poll this endpoint; a missing row means the device has never
// reported and the client keeps whatever state it already shows.
func (srv *deviceService) GetStatus(ctx context.Context) (*entity.DeviceStatus, error) {
	status, err := srv.statusRepo.FindByDeviceID(ctx, srv.deviceCfg.ID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceStatusNotFound) {
			return nil, errors.Wrap(domainerrors.ErrDeviceStatusNotFound, "device has not reported yet")
		}

		return nil, errors.Wrap(err, "failed to find device status")
	}

	return status, nil
}

// Report applies one firmware heartbeat. The status row is upserted with a
// fresh ping; pump state transitions open and close the automatic watering
// cycle in the history log, all inside one transaction.
func (srv *deviceService) Report(ctx context.Context, input usecase.DeviceReportInput) (*entity.DeviceStatus, error) {
	now := srv.now()

	var reported *entity.DeviceStatus
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		statusRepo := repoFactory.DeviceStatusRepo()
		historyRepo := repoFactory.HistoryRepo()

		previousPump := entity.PumpOff
		wateringStartedAt := (*time.Time)(nil)

		existing, err := statusRepo.FindByDeviceID(ctx, srv.deviceCfg.ID)
		if err != nil && !errors.Is(err, repository.ErrDeviceStatusNotFound) {
			return errors.Wrap(err, "failed to load current device status")
		}
		if existing != nil {
			previousPump = existing.PumpState
			wateringStartedAt = existing.WateringStartedAt
		}

		if input.PumpState == entity.PumpOn && wateringStartedAt == nil {
			wateringStartedAt = &now
		}
		if input.PumpState == entity.PumpOff {
			wateringStartedAt = nil
		}

		status := &entity.DeviceStatus{
			DeviceID:          srv.deviceCfg.ID,
			PumpState:         input.PumpState,
			ConnectionState:   entity.ConnectionOnline,
			IPAddress:         input.IPAddress,
			WateringStartedAt: wateringStartedAt,
			LastPingAt:        &now,
		}
		if err := statusRepo.Upsert(ctx, status); err != nil {
			return errors.Wrap(err, "failed to upsert device status")
		}
		reported = status

		switch {
		case previousPump == entity.PumpOff && input.PumpState == entity.PumpOn:
			return srv.openAutomaticCycle(ctx, historyRepo, now)
		case previousPump == entity.PumpOn && input.PumpState == entity.PumpOff:
			return srv.closeAutomaticCycle(ctx, historyRepo, now)
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to apply device report", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to apply device report")
	}

	srv.log(ctx).Debug("Device report applied",
		slog.String("deviceID", srv.deviceCfg.ID),
		slog.String("pump", string(input.PumpState)))

	return reported, nil
}

// MarkStaleOffline flips the device offline when its last ping is older than
// the configured threshold. Called periodically by the connectivity monitor.
func (srv *deviceService) MarkStaleOffline(ctx context.Context) (int64, error) {
	cutoff := srv.now().Add(-srv.deviceCfg.OfflineAfter)

	changed, err := srv.statusRepo.MarkOffline(ctx, srv.deviceCfg.ID, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "failed to mark device offline")
	}

	if changed > 0 {
		srv.log(ctx).Warn("Device marked offline",
			slog.String("deviceID", srv.deviceCfg.ID),
			slog.Duration("threshold", srv.deviceCfg.OfflineAfter))
	}

	return changed, nil
}

// openAutomaticCycle records the start of a schedule-driven watering. Only
// one automatic cycle can be open at a time; a leftover open entry means a
// previous stop report was lost, so it is left for the close to pick up.
func (srv *deviceService) openAutomaticCycle(ctx context.Context, historyRepo repository.HistoryRepository, startedAt time.Time) error {
	_, err := historyRepo.FindLatestOpenAutomatic(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrHistoryEntryNotFound) {
		return errors.Wrap(err, "failed to check for open automatic entry")
	}

	entry := &entity.HistoryEntry{
		Kind:      entity.HistoryKindAutomatic,
		State:     entity.HistoryStateCompleted,
		StartedAt: startedAt,
	}

	return errors.Wrap(historyRepo.Create(ctx, entry), "failed to open automatic history entry")
}

// closeAutomaticCycle finishes the open schedule-driven watering, if any.
// Absence is tolerated: the pump may have been switched on manually.
func (srv *deviceService) closeAutomaticCycle(ctx context.Context, historyRepo repository.HistoryRepository, endedAt time.Time) error {
	open, err := historyRepo.FindLatestOpenAutomatic(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryEntryNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find open automatic entry")
	}

	duration := int(endedAt.Sub(open.StartedAt).Seconds())
	if err := historyRepo.Close(ctx, open.ID, endedAt, duration); err != nil {
		return errors.Wrap(err, "failed to close automatic history entry")
	}

	srv.log(ctx).Info("Automatic watering finished",
		slog.String("duration", util.FormatSeconds(duration)))

	return nil
}
