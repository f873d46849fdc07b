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
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// defaultHistoryLimit caps a history listing when the caller sets no limit.
const defaultHistoryLimit = 50

// historyRepository implements the repository.HistoryRepository interface using GORM.
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository is the constructor for historyRepository.
func NewHistoryRepository(db *gorm.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

// List retrieves the most recent entries matching the filter, newest first,
// each joined to its originating schedule's time when still present.
func (repo *historyRepository) List(ctx context.Context, filter repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	query := repo.db.WithContext(ctx).
		Preload("Schedule").
		Order("fecha_hora_inicio DESC").
		Limit(limit)

	if filter.Kind != nil {
		query = query.Where("tipo = ?", string(*filter.Kind))
	}

	var entryMs []model.HistoryModel
	if err := query.Find(&entryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list history entries")
	}

	return toHistoryDomainList(entryMs), nil
}

// ListStartedBetween retrieves entries whose start timestamp falls within [from, to].
func (repo *historyRepository) ListStartedBetween(ctx context.Context, from, to time.Time) ([]*entity.HistoryEntry, error) {
	var entryMs []model.HistoryModel

	if err := repo.db.WithContext(ctx).
		Where("fecha_hora_inicio BETWEEN ? AND ?", from, to).
		Order("fecha_hora_inicio DESC").
		Find(&entryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list history entries by range")
	}

	return toHistoryDomainList(entryMs), nil
}

// Create appends a new watering event.
func (repo *historyRepository) Create(ctx context.Context, entry *entity.HistoryEntry) error {
	entryM := fromHistoryDomain(entry)

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrScheduleNotFound.WrapMessage("history entry references a missing schedule")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create history entry")
	}

	entry.ID = entryM.ID
	entry.CreatedAt = entryM.CreatedAt

	return nil
}

// FindLatestOpenManual retrieves the most recent manual entry still missing
// its end timestamp.
func (repo *historyRepository) FindLatestOpenManual(ctx context.Context) (*entity.HistoryEntry, error) {
	return repo.findLatestOpen(ctx, entity.HistoryKindManual)
}

// FindLatestOpenAutomatic retrieves the most recent automatic entry still
// missing its end timestamp.
func (repo *historyRepository) FindLatestOpenAutomatic(ctx context.Context) (*entity.HistoryEntry, error) {
	return repo.findLatestOpen(ctx, entity.HistoryKindAutomatic)
}

func (repo *historyRepository) findLatestOpen(ctx context.Context, kind entity.HistoryKind) (*entity.HistoryEntry, error) {
	var entryM model.HistoryModel

	if err := repo.db.WithContext(ctx).
		Where("tipo = ? AND fecha_hora_fin IS NULL", string(kind)).
		Order("fecha_hora_inicio DESC").
		First(&entryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrHistoryEntryNotFound
		}

		return nil, errors.Wrap(err, "failed to find open history entry")
	}

	return toHistoryDomain(&entryM), nil
}

// Close writes the end timestamp and the actual duration onto one entry.
func (repo *historyRepository) Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSeconds int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.HistoryModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"fecha_hora_fin": endedAt,
			"duracion_real":  durationSeconds,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to close history entry")
	}

	if result.RowsAffected == 0 {
		return repository.ErrHistoryEntryNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toHistoryDomain(data *model.HistoryModel) *entity.HistoryEntry {
	if data == nil {
		return nil
	}

	entry := &entity.HistoryEntry{
		ID:              data.ID,
		Kind:            entity.HistoryKind(data.Kind),
		State:           entity.HistoryState(data.State),
		StartedAt:       data.StartedAt,
		EndedAt:         data.EndedAt,
		DurationSeconds: data.DurationSeconds,
		ScheduleID:      data.ScheduleID,
		Notes:           data.Notes,
		CreatedAt:       data.CreatedAt,
	}

	if data.Schedule != nil {
		entry.ScheduleTime = &entity.ScheduleTime{
			Hour:   data.Schedule.Hour,
			Minute: data.Schedule.Minute,
		}
	}

	return entry
}

func toHistoryDomainList(data []model.HistoryModel) []*entity.HistoryEntry {
	entries := make([]*entity.HistoryEntry, len(data))
	for i := range data {
		entries[i] = toHistoryDomain(&data[i])
	}

	return entries
}

func fromHistoryDomain(data *entity.HistoryEntry) *model.HistoryModel {
	if data == nil {
		return nil
	}

	return &model.HistoryModel{
		ID:              data.ID,
		Kind:            string(data.Kind),
		State:           string(data.State),
		StartedAt:       data.StartedAt,
		EndedAt:         data.EndedAt,
		DurationSeconds: data.DurationSeconds,
		ScheduleID:      data.ScheduleID,
		Notes:           data.Notes,
	}
}
