package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ScheduleModel mirrors the 'horarios_riego' table. The weekday set is a
// native integer[] column (0-6, Sunday first). Range checks on hour, minute
// and duration live in the schema, not in the application layer.
type ScheduleModel struct {
	ID              uuid.UUID     `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Hour            int           `gorm:"column:hora;not null;check:hora >= 0 AND hora <= 23"`
	Minute          int           `gorm:"column:minuto;not null;check:minuto >= 0 AND minuto <= 59"`
	DurationSeconds int           `gorm:"column:duracion_segundos;not null;check:duracion_segundos > 0"`
	Weekdays        pq.Int64Array `gorm:"column:dias_semana;type:integer[];not null"`
	Active          bool          `gorm:"column:activo;not null;default:true"`
	CreatedBy       uuid.UUID     `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ScheduleModel) TableName() string {
	return "horarios_riego"
}
