// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Schedule is a recurring watering rule: a time of day, a duration and the
// set of weekdays it applies to. Weekdays use 0-6 with Sunday first, matching
// time.Weekday. An empty weekday set is allowed and simply never matches.
type Schedule struct {
	ID              uuid.UUID `json:"id"`
	Hour            int       `json:"hora"`
	Minute          int       `json:"minuto"`
	DurationSeconds int       `json:"duracion_segundos"`
	Weekdays        []int     `json:"dias_semana"`
	Active          bool      `json:"activo"`
	CreatedBy       uuid.UUID `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AppliesOn reports whether the schedule covers the given weekday.
func (s *Schedule) AppliesOn(day time.Weekday) bool {
	return slices.Contains(s.Weekdays, int(day))
}

// StartsAfter reports whether the schedule's time of day is strictly later
// than the given hour and minute.
func (s *Schedule) StartsAfter(hour, minute int) bool {
	return s.Hour > hour || (s.Hour == hour && s.Minute > minute)
}
