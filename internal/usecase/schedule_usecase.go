// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"riego/internal/domain/entity"

	"github.com/google/uuid"
)

// ScheduleInput carries the editable fields of a watering schedule. Hour,
// minute and duration ranges are enforced by the store schema, not here.
type ScheduleInput struct {
	Hour            int
	Minute          int
	DurationSeconds int
	Weekdays        []int
	Active          bool
}

// ScheduleUsecase defines CRUD over the recurring watering rules.
type ScheduleUsecase interface {
	List(ctx context.Context) ([]*entity.Schedule, error)
	Create(ctx context.Context, createdBy uuid.UUID, input ScheduleInput) (*entity.Schedule, error)
	Update(ctx context.Context, id uuid.UUID, input ScheduleInput) (*entity.Schedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Schedule, error)
}
