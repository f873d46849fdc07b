// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// HistoryKind distinguishes manual toggles from schedule-driven waterings.
type HistoryKind string

const (
	// HistoryKindManual marks a watering started by a user from the dashboard.
	HistoryKindManual HistoryKind = "manual"
	// HistoryKindAutomatic marks a watering started by the device on schedule.
	HistoryKindAutomatic HistoryKind = "automatico"
)

// IsValid checks if the HistoryKind is a valid value.
func (k HistoryKind) IsValid() bool {
	switch k {
	case HistoryKindManual, HistoryKindAutomatic:
		return true
	default:
		return false
	}
}

// HistoryState is the completion state of one watering event.
type HistoryState string

const (
	// HistoryStateCompleted marks a normally finished watering.
	HistoryStateCompleted HistoryState = "completado"
	// HistoryStateError marks a watering aborted by a device fault.
	HistoryStateError HistoryState = "error"
	// HistoryStateCancelled marks a watering cancelled before finishing.
	HistoryStateCancelled HistoryState = "cancelado"
)

// HistoryEntry records one watering event, manual or automatic. It is created
// when a watering starts and mutated once to set the end time and the actual
// duration when it stops; entries are never deleted by this application.
// A nil EndedAt marks an in-progress watering.
type HistoryEntry struct {
	ID              uuid.UUID    `json:"id"`
	Kind            HistoryKind  `json:"tipo"`
	State           HistoryState `json:"estado"`
	StartedAt       time.Time    `json:"fecha_hora_inicio"`
	EndedAt         *time.Time   `json:"fecha_hora_fin"`
	DurationSeconds *int         `json:"duracion_real"` // Elapsed seconds, set when the watering ends.
	ScheduleID      *uuid.UUID   `json:"horario_id"`    // The originating schedule, nil for manual waterings.
	Notes           *string      `json:"observaciones"`
	CreatedAt       time.Time    `json:"created_at"`

	// ScheduleTime carries the originating schedule's (hour, minute) when the
	// history list is fetched with its join; nil when ScheduleID is nil or the
	// schedule has been deleted since.
	ScheduleTime *ScheduleTime `json:"horarios_riego,omitempty"`
}

// ScheduleTime is the joined (hour, minute) pair of an entry's originating schedule.
type ScheduleTime struct {
	Hour   int `json:"hora"`
	Minute int `json:"minuto"`
}
