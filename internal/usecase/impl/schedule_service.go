// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "riego/internal/delivery/context"
	"riego/internal/domain/entity"
	domainerrors "riego/internal/domain/errors"
	"riego/internal/domain/repository"
	"riego/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// scheduleService implements the ScheduleUsecase interface.
// Field values pass through to the store untouched; hour, minute and
// duration ranges are enforced by the schema's CHECK constraints.
type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	logger       *slog.Logger
}

// ScheduleServiceParams holds dependencies for scheduleService, injected by Fx.
type ScheduleServiceParams struct {
	fx.In

	ScheduleRepo repository.ScheduleRepository
	Logger       *slog.Logger
}

// NewScheduleService is the constructor for scheduleService.
func NewScheduleService(params ScheduleServiceParams) usecase.ScheduleUsecase {
	return &scheduleService{
		scheduleRepo: params.ScheduleRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *scheduleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List retrieves every schedule, ordered by time of day.
func (srv *scheduleService) List(ctx context.Context) ([]*entity.Schedule, error) {
	schedules, err := srv.scheduleRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list schedules")
	}

	return schedules, nil
}

// Create persists a new watering schedule owned by the caller.
// An empty weekday set is allowed; the schedule simply never matches.
func (srv *scheduleService) Create(ctx context.Context, createdBy uuid.UUID, input usecase.ScheduleInput) (*entity.Schedule, error) {
	schedule := &entity.Schedule{
		Hour:            input.Hour,
		Minute:          input.Minute,
		DurationSeconds: input.DurationSeconds,
		Weekdays:        input.Weekdays,
		Active:          input.Active,
		CreatedBy:       createdBy,
	}

	if err := srv.scheduleRepo.Create(ctx, schedule); err != nil {
		srv.log(ctx).Warn("Schedule creation failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create schedule")
	}
	srv.log(ctx).Info("Schedule created", slog.Any("scheduleID", schedule.ID))

	return schedule, nil
}

// Update overwrites the editable fields of one schedule.
func (srv *scheduleService) Update(ctx context.Context, id uuid.UUID, input usecase.ScheduleInput) (*entity.Schedule, error) {
	schedule, err := srv.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return nil, errors.Wrap(domainerrors.ErrScheduleNotFound, "schedule not found")
		}

		return nil, errors.Wrap(err, "failed to find schedule")
	}

	schedule.Hour = input.Hour
	schedule.Minute = input.Minute
	schedule.DurationSeconds = input.DurationSeconds
	schedule.Weekdays = input.Weekdays
	schedule.Active = input.Active

	if err := srv.scheduleRepo.Update(ctx, schedule); err != nil {
		srv.log(ctx).Warn("Schedule update failed", slog.Any("scheduleID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update schedule")
	}

	return schedule, nil
}

// Delete removes one schedule. History entries that reference it survive
// with their schedule link nulled out by the store.
func (srv *scheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.scheduleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return errors.Wrap(domainerrors.ErrScheduleNotFound, "schedule not found")
		}

		return errors.Wrap(err, "failed to delete schedule")
	}
	srv.log(ctx).Info("Schedule deleted", slog.Any("scheduleID", id))

	return nil
}

// SetActive writes the active flag and returns the refreshed schedule.
// Plain write; concurrent flips last-write-win.
func (srv *scheduleService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Schedule, error) {
	if err := srv.scheduleRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return nil, errors.Wrap(domainerrors.ErrScheduleNotFound, "schedule not found")
		}

		return nil, errors.Wrap(err, "failed to set schedule active flag")
	}

	schedule, err := srv.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload schedule")
	}

	return schedule, nil
}
