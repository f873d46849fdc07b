// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"riego/internal/domain/entity"
)

// ErrDeviceStatusNotFound is returned when no status row exists for a device identifier.
var ErrDeviceStatusNotFound = errors.New("device status not found")

// DeviceStatusRepository defines operations over the single status row each
// device maintains. The row is overwritten in place; no history is kept here.
type DeviceStatusRepository interface {
	// FindByDeviceID retrieves the status row for one device identifier.
	FindByDeviceID(ctx context.Context, deviceID string) (*entity.DeviceStatus, error)

	// Upsert creates or overwrites the status row for the entity's device identifier.
	Upsert(ctx context.Context, status *entity.DeviceStatus) error

	// UpdatePump sets the pump state and the watering-start timestamp of one
	// device's status row. A nil wateringStartedAt clears the column.
	UpdatePump(ctx context.Context, deviceID string, pump entity.PumpState, wateringStartedAt *time.Time) error

	// MarkOffline flips estado_conexion to offline for the device when its last
	// ping is older than the given instant, returning how many rows changed.
	MarkOffline(ctx context.Context, deviceID string, lastPingBefore time.Time) (int64, error)
}
