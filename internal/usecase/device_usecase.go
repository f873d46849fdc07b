// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"riego/internal/domain/entity"
)

// DeviceReportInput is one heartbeat from the controller firmware.
type DeviceReportInput struct {
	PumpState entity.PumpState
	IPAddress *string
}

// DeviceUsecase defines the interface for device status operations: the read
// side the dashboard polls and the write side the firmware reports to.
type DeviceUsecase interface {
	// GetStatus retrieves the status row of the configured device.
	GetStatus(ctx context.Context) (*entity.DeviceStatus, error)

	// Report applies one firmware heartbeat: upserts the status row, stamps
	// the ping, and opens or closes the automatic watering cycle on pump
	// state transitions.
	Report(ctx context.Context, input DeviceReportInput) (*entity.DeviceStatus, error)

	// MarkStaleOffline flips the device offline when its last ping is older
	// than the configured threshold. Returns the number of rows changed.
	MarkStaleOffline(ctx context.Context) (int64, error)
}
