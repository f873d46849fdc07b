package handler

import (
	"log/slog"
	"net/http"

	"riego/internal/delivery/http/response"
	"riego/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ScheduleHandler holds dependencies for watering schedule handlers.
type ScheduleHandler struct {
	uc     usecase.ScheduleUsecase
	logger *slog.Logger
}

// NewScheduleHandler is the constructor for ScheduleHandler, injected by Fx.
func NewScheduleHandler(uc usecase.ScheduleUsecase, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		uc:     uc,
		logger: logger,
	}
}

type scheduleRequest struct {
	Hour            int   `json:"hora" validate:"min=0,max=23"`
	Minute          int   `json:"minuto" validate:"min=0,max=59"`
	DurationSeconds int   `json:"duracion_segundos" validate:"required,min=1,max=7200"`
	Weekdays        []int `json:"dias_semana" validate:"dive,min=0,max=6"`
	Active          *bool `json:"activo"`
}

type setActiveRequest struct {
	Active bool `json:"activo"`
}

func (r *scheduleRequest) toInput() usecase.ScheduleInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return usecase.ScheduleInput{
		Hour:            r.Hour,
		Minute:          r.Minute,
		DurationSeconds: r.DurationSeconds,
		Weekdays:        r.Weekdays,
		Active:          active,
	}
}

// List returns every schedule, ordered by time of day.
func (h *ScheduleHandler) List(c echo.Context) error {
	schedules, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, schedules, "")
}

// Create registers a new watering schedule.
func (h *ScheduleHandler) Create(c echo.Context) error {
	profileID, ok := c.Get("profileID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Sesión inválida")
	}

	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de horario inválidos")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Datos de horario inválidos")
	}

	schedule, err := h.uc.Create(c.Request().Context(), profileID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, schedule, "Horario creado")
}

// Update replaces the fields of an existing schedule.
func (h *ScheduleHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de horario inválido")
	}

	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de horario inválidos")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Datos de horario inválidos")
	}

	schedule, err := h.uc.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, schedule, "Horario actualizado")
}

// Delete removes a schedule permanently.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de horario inválido")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Horario eliminado"}, "Horario eliminado")
}

// SetActive flips a schedule's enabled flag without touching its fields.
func (h *ScheduleHandler) SetActive(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de horario inválido")
	}

	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de horario inválidos")
	}

	schedule, err := h.uc.SetActive(c.Request().Context(), id, req.Active)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, schedule, "Horario actualizado")
}
