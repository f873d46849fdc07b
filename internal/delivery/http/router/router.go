// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"riego/internal/delivery/http/middleware"
	"riego/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	DeviceHandler    *handler.DeviceHandler
	ScheduleHandler  *handler.ScheduleHandler
	DashboardHandler *handler.DashboardHandler
	HistoryHandler   *handler.HistoryHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	deviceHandler    *handler.DeviceHandler
	scheduleHandler  *handler.ScheduleHandler
	dashboardHandler *handler.DashboardHandler
	historyHandler   *handler.HistoryHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		deviceHandler:    params.DeviceHandler,
		scheduleHandler:  params.ScheduleHandler,
		dashboardHandler: params.DashboardHandler,
		historyHandler:   params.HistoryHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/session", r.authHandler.GetSession, r.authMiddleware.Authenticate)
		authGroup.PUT("/profile", r.authHandler.UpdateProfile, r.authMiddleware.Authenticate)
	}

	// Device routes. The report endpoint is called by the firmware and is
	// authenticated by API key inside the handler, not by a user session.
	deviceGroup := e.Group("/device")
	{
		deviceGroup.POST("/report", r.deviceHandler.Report)
		deviceGroup.GET("/status", r.deviceHandler.GetStatus, r.authMiddleware.Authenticate)
	}

	// Schedule routes require authentication
	scheduleGroup := e.Group("/schedules")
	scheduleGroup.Use(r.authMiddleware.Authenticate)
	{
		scheduleGroup.GET("", r.scheduleHandler.List)
		scheduleGroup.POST("", r.scheduleHandler.Create)
		scheduleGroup.PUT("/:id", r.scheduleHandler.Update)
		scheduleGroup.DELETE("/:id", r.scheduleHandler.Delete)
		scheduleGroup.PATCH("/:id/active", r.scheduleHandler.SetActive)
	}

	// Dashboard routes require authentication
	dashboardGroup := e.Group("/dashboard")
	dashboardGroup.Use(r.authMiddleware.Authenticate)
	{
		dashboardGroup.GET("", r.dashboardHandler.GetOverview)
		dashboardGroup.POST("/pump/toggle", r.dashboardHandler.TogglePump)
	}

	// History routes require authentication
	historyGroup := e.Group("/history")
	historyGroup.Use(r.authMiddleware.Authenticate)
	{
		historyGroup.GET("", r.historyHandler.List)
	}
}
