package handler

import (
	"log/slog"
	"net/http"

	"riego/internal/delivery/http/response"
	"riego/internal/domain/entity"
	"riego/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HistoryHandler holds dependencies for the watering history handlers.
type HistoryHandler struct {
	uc     usecase.HistoryUsecase
	logger *slog.Logger
}

// NewHistoryHandler is the constructor for HistoryHandler, injected by Fx.
func NewHistoryHandler(uc usecase.HistoryUsecase, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns the most recent watering records, newest first, optionally
// filtered by ?tipo=manual or ?tipo=automatico.
func (h *HistoryHandler) List(c echo.Context) error {
	var input usecase.HistoryListInput

	switch tipo := c.QueryParam("tipo"); tipo {
	case "":
	case string(entity.HistoryKindManual), string(entity.HistoryKindAutomatic):
		kind := entity.HistoryKind(tipo)
		input.Kind = &kind
	default:
		return response.BadRequest(c, "INVALID_INPUT", "Tipo de riego inválido")
	}

	output, err := h.uc.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
