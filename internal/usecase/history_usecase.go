// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"riego/internal/domain/entity"
)

// HistoryListInput restricts a history listing. A nil Kind returns all kinds.
type HistoryListInput struct {
	Kind *entity.HistoryKind
}

// HistoryPageStats aggregates the fetched page only, not the whole table.
// AverageSeconds is zero for an empty page.
type HistoryPageStats struct {
	Count          int     `json:"total_riegos"`
	TotalSeconds   int     `json:"tiempo_total"`
	AverageSeconds float64 `json:"promedio"`
}

// HistoryListOutput is one page of watering events plus its aggregates.
type HistoryListOutput struct {
	Entries []*entity.HistoryEntry `json:"registros"`
	Stats   HistoryPageStats       `json:"estadisticas"`
}

// HistoryUsecase defines the read side of the watering event log.
type HistoryUsecase interface {
	List(ctx context.Context, input HistoryListInput) (*HistoryListOutput, error)
}
