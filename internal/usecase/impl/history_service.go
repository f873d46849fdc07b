// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "riego/internal/delivery/context"
	"riego/internal/domain/repository"
	"riego/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// historyPageLimit is how many entries one history page holds.
const historyPageLimit = 50

// historyService implements the HistoryUsecase interface.
type historyService struct {
	historyRepo repository.HistoryRepository
	logger      *slog.Logger
}

// HistoryServiceParams holds dependencies for historyService, injected by Fx.
type HistoryServiceParams struct {
	fx.In

	HistoryRepo repository.HistoryRepository
	Logger      *slog.Logger
}

// NewHistoryService is the constructor for historyService.
func NewHistoryService(params HistoryServiceParams) usecase.HistoryUsecase {
	return &historyService{
		historyRepo: params.HistoryRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *historyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List retrieves the most recent page of watering events plus its aggregates.
// The aggregates cover the fetched page only, not the whole table.
func (srv *historyService) List(ctx context.Context, input usecase.HistoryListInput) (*usecase.HistoryListOutput, error) {
	entries, err := srv.historyRepo.List(ctx, repository.HistoryFilter{
		Kind:  input.Kind,
		Limit: historyPageLimit,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list history", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list history")
	}

	stats := usecase.HistoryPageStats{Count: len(entries)}
	for _, entry := range entries {
		if entry.DurationSeconds != nil {
			stats.TotalSeconds += *entry.DurationSeconds
		}
	}
	if stats.Count > 0 {
		stats.AverageSeconds = float64(stats.TotalSeconds) / float64(stats.Count)
	}

	return &usecase.HistoryListOutput{
		Entries: entries,
		Stats:   stats,
	}, nil
}
