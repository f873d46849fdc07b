// Package entity contains the core business objects of the project.
package entity

import "time"

// PumpState is the binary on/off status reported by and commanded to the pump.
type PumpState string

const (
	// PumpOn means the pump is currently watering.
	PumpOn PumpState = "encendido"
	// PumpOff means the pump is idle.
	PumpOff PumpState = "apagado"
)

// Toggle returns the opposite pump state.
func (s PumpState) Toggle() PumpState {
	if s == PumpOn {
		return PumpOff
	}

	return PumpOn
}

// ConnectionState describes device reachability as judged from its last ping.
type ConnectionState string

const (
	// ConnectionOnline means the device reported recently.
	ConnectionOnline ConnectionState = "online"
	// ConnectionOffline means the device has missed its reporting window.
	ConnectionOffline ConnectionState = "offline"
)

// DeviceStatus is the latest reported state of one physical controller.
// There is at most one row per device identifier; it is overwritten in place
// by device reports and manual toggles, no history is retained here.
type DeviceStatus struct {
	ID                string          `json:"id"`
	DeviceID          string          `json:"esp32_id"`
	PumpState         PumpState       `json:"estado_bomba"`
	ConnectionState   ConnectionState `json:"estado_conexion"`
	IPAddress         *string         `json:"ip_address"`
	WateringStartedAt *time.Time      `json:"tiempo_inicio_riego"` // Set while a watering is running, nil otherwise.
	LastPingAt        *time.Time      `json:"ultimo_ping"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
