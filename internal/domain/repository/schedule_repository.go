// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"riego/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrScheduleNotFound is returned when a schedule row does not exist.
var ErrScheduleNotFound = errors.New("schedule not found")

// ScheduleRepository defines CRUD over the recurring watering rules.
// Listings are always ordered by (hora, minuto) ascending; the dashboard's
// next-occurrence scan relies on that order and never re-sorts.
type ScheduleRepository interface {
	// List retrieves all schedules ordered by (hora, minuto) ascending.
	List(ctx context.Context) ([]*entity.Schedule, error)

	// ListActiveForWeekday retrieves active schedules whose weekday set
	// contains the given day, ordered by (hora, minuto) ascending.
	ListActiveForWeekday(ctx context.Context, day time.Weekday) ([]*entity.Schedule, error)

	// FindByID retrieves a single schedule.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)

	// Create persists a new schedule.
	Create(ctx context.Context, schedule *entity.Schedule) error

	// Update overwrites an existing schedule's editable fields.
	Update(ctx context.Context, schedule *entity.Schedule) error

	// Delete removes a schedule row. History rows referencing it keep their
	// data; the foreign key nulls out on delete.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetActive writes the active flag. Plain write, no optimistic lock.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
