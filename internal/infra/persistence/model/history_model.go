package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryModel mirrors the 'historial_riego' table. horario_id nulls out when
// the originating schedule is deleted, so past events survive schedule edits.
type HistoryModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Kind            string     `gorm:"column:tipo;type:varchar(20);not null"`
	State           string     `gorm:"column:estado;type:varchar(20);not null;default:completado"`
	StartedAt       time.Time  `gorm:"column:fecha_hora_inicio;not null;index:idx_historial_inicio,sort:desc"`
	EndedAt         *time.Time `gorm:"column:fecha_hora_fin"`
	DurationSeconds *int       `gorm:"column:duracion_real"`
	ScheduleID      *uuid.UUID `gorm:"column:horario_id;type:uuid;constraint:OnDelete:SET NULL"`
	Notes           *string    `gorm:"column:observaciones;type:text"`
	CreatedAt       time.Time

	Schedule *ScheduleModel `gorm:"foreignKey:ScheduleID"`
}

// TableName explicitly sets the table name for GORM.
func (HistoryModel) TableName() string {
	return "historial_riego"
}
