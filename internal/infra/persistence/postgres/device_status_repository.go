// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"riego/internal/domain/entity"
	domainerrors "riego/internal/domain/errors"
	"riego/internal/domain/repository"
	"riego/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// deviceStatusRepository implements the repository.DeviceStatusRepository interface using GORM.
type deviceStatusRepository struct {
	db *gorm.DB
}

// NewDeviceStatusRepository is the constructor for deviceStatusRepository.
func NewDeviceStatusRepository(db *gorm.DB) repository.DeviceStatusRepository {
	return &deviceStatusRepository{db: db}
}

// FindByDeviceID retrieves the single status row of one device.
func (repo *deviceStatusRepository) FindByDeviceID(ctx context.Context, deviceID string) (*entity.DeviceStatus, error) {
	var statusM model.DeviceStatusModel

	if err := repo.db.WithContext(ctx).
		Where("esp32_id = ?", deviceID).
		First(&statusM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeviceStatusNotFound
		}

		return nil, errors.Wrap(err, "failed to find device status")
	}

	return toDeviceStatusDomain(&statusM), nil
}

// Upsert creates or overwrites the status row keyed on esp32_id.
func (repo *deviceStatusRepository) Upsert(ctx context.Context, status *entity.DeviceStatus) error {
	statusM := fromDeviceStatusDomain(status)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "esp32_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"estado_bomba", "estado_conexion", "ip_address",
				"tiempo_inicio_riego", "ultimo_ping", "updated_at",
			}),
		}).
		Create(statusM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("device status rejected by schema")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert device status")
	}

	status.ID = statusM.ID.String()
	status.UpdatedAt = statusM.UpdatedAt

	return nil
}

// UpdatePump sets the pump state and the watering-start timestamp in one write.
// A nil wateringStartedAt clears the column.
func (repo *deviceStatusRepository) UpdatePump(ctx context.Context, deviceID string, pump entity.PumpState, wateringStartedAt *time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DeviceStatusModel{}).
		Where("esp32_id = ?", deviceID).
		Updates(map[string]any{
			"estado_bomba":        string(pump),
			"tiempo_inicio_riego": wateringStartedAt,
			"updated_at":          time.Now(),
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update pump state")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceStatusNotFound
	}

	return nil
}

// MarkOffline flips estado_conexion to offline when the last ping predates the
// given instant. Rows already offline or with a fresh ping are left alone.
func (repo *deviceStatusRepository) MarkOffline(ctx context.Context, deviceID string, lastPingBefore time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.DeviceStatusModel{}).
		Where("esp32_id = ? AND estado_conexion = ?", deviceID, string(entity.ConnectionOnline)).
		Where("ultimo_ping IS NULL OR ultimo_ping < ?", lastPingBefore).
		Updates(map[string]any{
			"estado_conexion": string(entity.ConnectionOffline),
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to mark device offline")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toDeviceStatusDomain(data *model.DeviceStatusModel) *entity.DeviceStatus {
	if data == nil {
		return nil
	}

	return &entity.DeviceStatus{
		ID:                data.ID.String(),
		DeviceID:          data.DeviceID,
		PumpState:         entity.PumpState(data.PumpState),
		ConnectionState:   entity.ConnectionState(data.ConnectionState),
		IPAddress:         data.IPAddress,
		WateringStartedAt: data.WateringStartedAt,
		LastPingAt:        data.LastPingAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func fromDeviceStatusDomain(data *entity.DeviceStatus) *model.DeviceStatusModel {
	if data == nil {
		return nil
	}

	return &model.DeviceStatusModel{
		DeviceID:          data.DeviceID,
		PumpState:         string(data.PumpState),
		ConnectionState:   string(data.ConnectionState),
		IPAddress:         data.IPAddress,
		WateringStartedAt: data.WateringStartedAt,
		LastPingAt:        data.LastPingAt,
	}
}
