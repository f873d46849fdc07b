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

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	txManager    repository.TransactionManager
	statusRepo   repository.DeviceStatusRepository
	scheduleRepo repository.ScheduleRepository
	historyRepo  repository.HistoryRepository
	deviceCfg    config.DeviceConfig
	logger       *slog.Logger
	now          func() time.Time
}

// DashboardServiceParams holds dependencies for dashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	StatusRepo   repository.DeviceStatusRepository
	ScheduleRepo repository.ScheduleRepository
	HistoryRepo  repository.HistoryRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	return &dashboardService{
		txManager:    params.TxManager,
		statusRepo:   params.StatusRepo,
		scheduleRepo: params.ScheduleRepo,
		historyRepo:  params.HistoryRepo,
		deviceCfg:    params.Config.Device,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *dashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetOverview assembles the dashboard aggregate: the live status row, the
// next pending schedule of the day, and today's watering totals.
func (srv *dashboardService) GetOverview(ctx context.Context) (*usecase.DashboardOutput, error) {
	status, err := srv.statusRepo.FindByDeviceID(ctx, srv.deviceCfg.ID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceStatusNotFound) {
			return nil, errors.Wrap(domainerrors.ErrDeviceStatusNotFound, "device has not reported yet")
		}

		return nil, errors.Wrap(err, "failed to find device status")
	}

	next, err := srv.nextScheduleToday(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := srv.todayStats(ctx, srv.historyRepo)
	if err != nil {
		return nil, err
	}

	return &usecase.DashboardOutput{
		Status:       status,
		NextSchedule: next,
		TodayStats:   stats,
	}, nil
}

// TogglePump flips the pump manually. The status row update and the history
// write commit or roll back together; a half-applied toggle never becomes
// visible.
func (srv *dashboardService) TogglePump(ctx context.Context) (*usecase.PumpToggleOutput, error) {
	now := srv.now()

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		statusRepo := repoFactory.DeviceStatusRepo()
		historyRepo := repoFactory.HistoryRepo()

		status, err := statusRepo.FindByDeviceID(ctx, srv.deviceCfg.ID)
		if err != nil {
			if errors.Is(err, repository.ErrDeviceStatusNotFound) {
				return errors.Wrap(domainerrors.ErrDeviceStatusNotFound, "cannot toggle before the device reports")
			}

			return errors.Wrap(err, "failed to find device status")
		}

		newState := status.PumpState.Toggle()
		if newState == entity.PumpOn {
			if err := statusRepo.UpdatePump(ctx, srv.deviceCfg.ID, newState, &now); err != nil {
				return errors.Wrap(err, "failed to switch pump on")
			}

			entry := &entity.HistoryEntry{
				Kind:      entity.HistoryKindManual,
				State:     entity.HistoryStateCompleted,
				StartedAt: now,
			}

			return errors.Wrap(historyRepo.Create(ctx, entry), "failed to record manual watering start")
		}

		if err := statusRepo.UpdatePump(ctx, srv.deviceCfg.ID, newState, nil); err != nil {
			return errors.Wrap(err, "failed to switch pump off")
		}

		return srv.closeManualEntry(ctx, historyRepo, now)
	})
	if err != nil {
		srv.log(ctx).Error("Pump toggle failed", slog.Any("error", err))

		return nil, err
	}

	// Re-fetch so the response reflects exactly what was committed.
	status, err := srv.statusRepo.FindByDeviceID(ctx, srv.deviceCfg.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload device status after toggle")
	}

	stats, err := srv.todayStats(ctx, srv.historyRepo)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Pump toggled", slog.String("pump", string(status.PumpState)))

	return &usecase.PumpToggleOutput{
		Status:     status,
		TodayStats: stats,
	}, nil
}

// closeManualEntry finishes the most recent open manual watering. Absence is
// tolerated: the pump may have been running before this service ever saw it.
func (srv *dashboardService) closeManualEntry(ctx context.Context, historyRepo repository.HistoryRepository, endedAt time.Time) error {
	open, err := historyRepo.FindLatestOpenManual(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryEntryNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find open manual entry")
	}

	duration := int(endedAt.Sub(open.StartedAt).Seconds())
	if err := historyRepo.Close(ctx, open.ID, endedAt, duration); err != nil {
		return errors.Wrap(err, "failed to close manual watering entry")
	}

	srv.log(ctx).Info("Manual watering finished",
		slog.String("duration", util.FormatSeconds(duration)))

	return nil
}

// nextScheduleToday returns the first active schedule of today's weekday
// whose time of day is still ahead. There is no wraparound: once the last
// schedule of the day has passed, there is no next occurrence until the next
// matching day begins.
func (srv *dashboardService) nextScheduleToday(ctx context.Context) (*entity.Schedule, error) {
	now := srv.now()

	schedules, err := srv.scheduleRepo.ListActiveForWeekday(ctx, now.Weekday())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list today's schedules")
	}

	for _, schedule := range schedules {
		if schedule.StartsAfter(now.Hour(), now.Minute()) {
			return schedule, nil
		}
	}

	return nil, nil
}

// todayStats aggregates the waterings started today, in local time. Entries
// without a recorded duration count as zero seconds.
func (srv *dashboardService) todayStats(ctx context.Context, historyRepo repository.HistoryRepository) (usecase.DailyStats, error) {
	now := srv.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	entries, err := historyRepo.ListStartedBetween(ctx, from, to)
	if err != nil {
		return usecase.DailyStats{}, errors.Wrap(err, "failed to list today's waterings")
	}

	stats := usecase.DailyStats{Count: len(entries)}
	for _, entry := range entries {
		if entry.DurationSeconds != nil {
			stats.TotalSeconds += *entry.DurationSeconds
		}
	}

	return stats, nil
}
