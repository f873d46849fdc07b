package handler

import (
	"log/slog"
	"net/http"

	"riego/internal/delivery/http/response"
	"riego/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DashboardHandler holds dependencies for the dashboard aggregate handlers.
type DashboardHandler struct {
	uc     usecase.DashboardUsecase
	logger *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler, injected by Fx.
func NewDashboardHandler(uc usecase.DashboardUsecase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetOverview returns the device status, next scheduled run and today's
// totals in one payload.
func (h *DashboardHandler) GetOverview(c echo.Context) error {
	overview, err := h.uc.GetOverview(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, overview, "")
}

// TogglePump flips the pump and records the manual watering in one step.
func (h *DashboardHandler) TogglePump(c echo.Context) error {
	result, err := h.uc.TogglePump(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "")
}
