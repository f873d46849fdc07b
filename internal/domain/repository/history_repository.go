// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"riego/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrHistoryEntryNotFound is returned when a history row does not exist.
var ErrHistoryEntryNotFound = errors.New("history entry not found")

// HistoryFilter restricts a history listing. A nil Kind means all kinds.
type HistoryFilter struct {
	Kind  *entity.HistoryKind
	Limit int
}

// HistoryRepository defines append/query operations over watering events.
// Entries are created when a watering starts and closed exactly once; they
// are never deleted by this application.
type HistoryRepository interface {
	// List retrieves the most recent entries matching the filter, ordered by
	// fecha_hora_inicio descending, each joined to its originating schedule's
	// (hora, minuto) when still present.
	List(ctx context.Context, filter HistoryFilter) ([]*entity.HistoryEntry, error)

	// ListStartedBetween retrieves entries whose start timestamp falls within
	// [from, to], used for the dashboard's daily statistics.
	ListStartedBetween(ctx context.Context, from, to time.Time) ([]*entity.HistoryEntry, error)

	// Create appends a new watering event.
	Create(ctx context.Context, entry *entity.HistoryEntry) error

	// FindLatestOpenManual retrieves the most recent manual entry with a null
	// end timestamp, or ErrHistoryEntryNotFound when none is open.
	FindLatestOpenManual(ctx context.Context) (*entity.HistoryEntry, error)

	// FindLatestOpenAutomatic retrieves the most recent automatic entry with a
	// null end timestamp, or ErrHistoryEntryNotFound when none is open.
	FindLatestOpenAutomatic(ctx context.Context) (*entity.HistoryEntry, error)

	// Close writes the end timestamp and actual duration onto one entry.
	Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSeconds int) error
}
