// Package worker contains the background connectivity monitor. The firmware
// only reports while powered, so a separate loop has to notice silence and
// flip the dashboard to offline.
package worker

import (
	"context"
	"log/slog"
	"time"

	"riego/config"
	"riego/internal/delivery"
	"riego/internal/usecase"

	"go.uber.org/fx"
)

type monitor struct {
	cfg      *config.Config
	logger   *slog.Logger
	deviceUC usecase.DeviceUsecase

	stopped chan struct{}
	cancel  context.CancelFunc
}

// MonitorParams holds dependencies for the connectivity monitor.
type MonitorParams struct {
	fx.In

	Lc       fx.Lifecycle
	Cfg      *config.Config
	Logger   *slog.Logger
	DeviceUC usecase.DeviceUsecase
}

// NewMonitor creates the connectivity monitor loop.
func NewMonitor(params MonitorParams) (delivery.Delivery, error) {
	m := &monitor{
		cfg:      params.Cfg,
		logger:   params.Logger,
		deviceUC: params.DeviceUC,
		stopped:  make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: m.stop,
	})

	return m, nil
}

// Serve runs the monitor until the context is cancelled. Each tick marks the
// device offline when its last ping is older than the configured threshold.
func (m *monitor) Serve(ctx context.Context) error {
	ctx, m.cancel = context.WithCancel(ctx)
	defer close(m.stopped)

	interval := m.cfg.Device.MonitorInterval
	m.logger.Info("Starting connectivity monitor",
		slog.Duration("interval", interval),
		slog.Duration("offlineAfter", m.cfg.Device.OfflineAfter),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Connectivity monitor stopped")

			return nil
		case <-ticker.C:
			m.sweep(ctx)
		}
	}
}

func (m *monitor) sweep(ctx context.Context) {
	changed, err := m.deviceUC.MarkStaleOffline(ctx)
	if err != nil {
		m.logger.Error("Connectivity sweep failed", slog.Any("error", err))

		return
	}

	if changed > 0 {
		m.logger.Warn("Device marked offline",
			slog.String("deviceID", m.cfg.Device.ID),
			slog.Duration("offlineAfter", m.cfg.Device.OfflineAfter),
		)
	}
}

func (m *monitor) stop(ctx context.Context) error {
	if m.cancel == nil {
		return nil
	}
	m.cancel()

	select {
	case <-m.stopped:
	case <-ctx.Done():
	}

	return nil
}
