package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"riego/config"
	"riego/internal/delivery/http/response"
	"riego/internal/domain/entity"
	"riego/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderAPIKey carries the firmware's report credential.
const HeaderAPIKey = "X-Api-Key"

// DeviceHandler holds dependencies for device status handlers.
type DeviceHandler struct {
	uc        usecase.DeviceUsecase
	reportKey string
	logger    *slog.Logger
}

// NewDeviceHandler is the constructor for DeviceHandler, injected by Fx.
func NewDeviceHandler(uc usecase.DeviceUsecase, cfg *config.Config, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{
		uc:        uc,
		reportKey: cfg.Device.ReportKey,
		logger:    logger,
	}
}

type deviceReportRequest struct {
	PumpState string  `json:"estado_bomba" validate:"required,oneof=encendido apagado"`
	IPAddress *string `json:"ip_address" validate:"omitempty,ip"`
}

// GetStatus returns the latest reported state of the controller.
// The dashboard polls this endpoint every few seconds.
func (h *DeviceHandler) GetStatus(c echo.Context) error {
	status, err := h.uc.GetStatus(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, status, "")
}

// Report ingests one firmware heartbeat. Authenticated by the report API key,
// not by a user session.
func (h *DeviceHandler) Report(c echo.Context) error {
	if h.reportKey != "" {
		provided := c.Request().Header.Get(HeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.reportKey)) != 1 {
			return response.Unauthorized(c, "DEVICE_REPORT_UNAUTHORIZED", "Clave de dispositivo inválida")
		}
	}

	var req deviceReportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Reporte de dispositivo inválido")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Reporte de dispositivo inválido")
	}

	status, err := h.uc.Report(c.Request().Context(), usecase.DeviceReportInput{
		PumpState: entity.PumpState(req.PumpState),
		IPAddress: req.IPAddress,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, status, "")
}
