package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"device": map[string]any{
			"reportKey": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "DEVICE_REPORTKEY", want: "device.reportKey"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDeviceDefaults(t *testing.T) {
	var device DeviceConfig
	applyDeviceDefaults(&device)

	if device.ID != defaultDeviceID {
		t.Fatalf("device ID = %q, want %q", device.ID, defaultDeviceID)
	}
	if device.MonitorInterval != defaultMonitorInterval {
		t.Fatalf("monitor interval = %v, want %v", device.MonitorInterval, defaultMonitorInterval)
	}
	if device.OfflineAfter != defaultOfflineAfter {
		t.Fatalf("offline threshold = %v, want %v", device.OfflineAfter, defaultOfflineAfter)
	}

	// Explicit settings are preserved.
	device = DeviceConfig{ID: "ESP32_TEST", MonitorInterval: defaultMonitorInterval, OfflineAfter: defaultOfflineAfter}
	applyDeviceDefaults(&device)
	if device.ID != "ESP32_TEST" {
		t.Fatalf("device ID = %q, want ESP32_TEST", device.ID)
	}
}
