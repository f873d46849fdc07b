// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"riego/internal/domain/entity"
	domainerrors "riego/internal/domain/errors"
	"riego/internal/domain/repository"
	"riego/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// scheduleRepository implements the repository.ScheduleRepository interface using GORM.
type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository is the constructor for scheduleRepository.
func NewScheduleRepository(db *gorm.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// List retrieves every schedule ordered by (hora, minuto) ascending.
func (repo *scheduleRepository) List(ctx context.Context) ([]*entity.Schedule, error) {
	var scheduleMs []model.ScheduleModel

	if err := repo.db.WithContext(ctx).
		Order("hora ASC, minuto ASC").
		Find(&scheduleMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list schedules")
	}

	return toScheduleDomainList(scheduleMs), nil
}

// ListActiveForWeekday retrieves active schedules whose weekday set contains
// the given day, in (hora, minuto) order. Consumers scan this order directly.
func (repo *scheduleRepository) ListActiveForWeekday(ctx context.Context, day time.Weekday) ([]*entity.Schedule, error) {
	var scheduleMs []model.ScheduleModel

	if err := repo.db.WithContext(ctx).
		Where("activo = ? AND dias_semana @> ARRAY[?]::integer[]", true, int(day)).
		Order("hora ASC, minuto ASC").
		Find(&scheduleMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list active schedules for weekday")
	}

	return toScheduleDomainList(scheduleMs), nil
}

// FindByID retrieves a single schedule.
func (repo *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	var scheduleM model.ScheduleModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&scheduleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrScheduleNotFound
		}

		return nil, errors.Wrap(err, "failed to find schedule by id")
	}

	return toScheduleDomain(&scheduleM), nil
}

// Create persists a new schedule.
func (repo *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	scheduleM := fromScheduleDomain(schedule)

	if err := repo.db.WithContext(ctx).Create(scheduleM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("schedule rejected by schema")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid schedule owner")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create schedule")
	}

	schedule.ID = scheduleM.ID
	schedule.CreatedAt = scheduleM.CreatedAt
	schedule.UpdatedAt = scheduleM.UpdatedAt

	return nil
}

// Update overwrites the editable fields of an existing schedule.
func (repo *scheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ScheduleModel{}).
		Where("id = ?", schedule.ID).
		Updates(map[string]any{
			"hora":              schedule.Hour,
			"minuto":            schedule.Minute,
			"duracion_segundos": schedule.DurationSeconds,
			"dias_semana":       weekdaysToArray(schedule.Weekdays),
			"activo":            schedule.Active,
		})

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("schedule rejected by schema")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update schedule")
	}

	if result.RowsAffected == 0 {
		return repository.ErrScheduleNotFound
	}

	return nil
}

// Delete removes a schedule. The history foreign key nulls out on delete,
// past events keep their data.
func (repo *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ScheduleModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete schedule")
	}

	if result.RowsAffected == 0 {
		return repository.ErrScheduleNotFound
	}

	return nil
}

// SetActive writes the active flag. Plain write, no optimistic lock.
func (repo *scheduleRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ScheduleModel{}).
		Where("id = ?", id).
		Update("activo", active)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set schedule active flag")
	}

	if result.RowsAffected == 0 {
		return repository.ErrScheduleNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toScheduleDomain(data *model.ScheduleModel) *entity.Schedule {
	if data == nil {
		return nil
	}

	weekdays := make([]int, len(data.Weekdays))
	for i, day := range data.Weekdays {
		weekdays[i] = int(day)
	}

	return &entity.Schedule{
		ID:              data.ID,
		Hour:            data.Hour,
		Minute:          data.Minute,
		DurationSeconds: data.DurationSeconds,
		Weekdays:        weekdays,
		Active:          data.Active,
		CreatedBy:       data.CreatedBy,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toScheduleDomainList(data []model.ScheduleModel) []*entity.Schedule {
	schedules := make([]*entity.Schedule, len(data))
	for i := range data {
		schedules[i] = toScheduleDomain(&data[i])
	}

	return schedules
}

func fromScheduleDomain(data *entity.Schedule) *model.ScheduleModel {
	if data == nil {
		return nil
	}

	return &model.ScheduleModel{
		ID:              data.ID,
		Hour:            data.Hour,
		Minute:          data.Minute,
		DurationSeconds: data.DurationSeconds,
		Weekdays:        weekdaysToArray(data.Weekdays),
		Active:          data.Active,
		CreatedBy:       data.CreatedBy,
	}
}

func weekdaysToArray(weekdays []int) pq.Int64Array {
	arr := make(pq.Int64Array, len(weekdays))
	for i, day := range weekdays {
		arr[i] = int64(day)
	}

	return arr
}
