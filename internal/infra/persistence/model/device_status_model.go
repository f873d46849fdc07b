package model

import (
	"time"

	"github.com/google/uuid"
)

// DeviceStatusModel mirrors the 'estado_dispositivo' table. At most one row
// exists per esp32_id; both the firmware and the manual toggle overwrite it
// in place.
type DeviceStatusModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DeviceID          string     `gorm:"column:esp32_id;type:varchar(100);not null;uniqueIndex"`
	PumpState         string     `gorm:"column:estado_bomba;type:varchar(20);not null;default:apagado"`
	ConnectionState   string     `gorm:"column:estado_conexion;type:varchar(20);not null;default:offline"`
	IPAddress         *string    `gorm:"column:ip_address;type:varchar(45)"`
	WateringStartedAt *time.Time `gorm:"column:tiempo_inicio_riego"`
	LastPingAt        *time.Time `gorm:"column:ultimo_ping"`
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (DeviceStatusModel) TableName() string {
	return "estado_dispositivo"
}
