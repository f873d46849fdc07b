// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"riego/internal/domain/entity"
)

// DailyStats aggregates the waterings started today.
type DailyStats struct {
	Count        int `json:"riegos_hoy"`
	TotalSeconds int `json:"tiempo_total_hoy"`
}

// DashboardOutput is the aggregate the dashboard renders: the live status
// row, the next pending schedule of the day, and today's totals.
// NextSchedule is nil when no active schedule remains today; there is no
// wraparound to later weekdays.
type DashboardOutput struct {
	Status       *entity.DeviceStatus `json:"estado"`
	NextSchedule *entity.Schedule     `json:"proximo_riego"`
	TodayStats   DailyStats           `json:"estadisticas"`
}

// PumpToggleOutput returns the refreshed state after a manual pump toggle.
type PumpToggleOutput struct {
	Status     *entity.DeviceStatus `json:"estado"`
	TodayStats DailyStats           `json:"estadisticas"`
}

// DashboardUsecase defines the aggregate read the dashboard polls and the
// manual pump toggle.
type DashboardUsecase interface {
	GetOverview(ctx context.Context) (*DashboardOutput, error)

	// TogglePump flips the pump and records the manual watering event. The
	// status update and the history write happen in one transaction.
	TogglePump(ctx context.Context) (*PumpToggleOutput, error)
}
