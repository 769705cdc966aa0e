// internal/config/normalize.go
package config

import (
	"net"
	"strings"
)

// Defaults, matching the INVT XD6KTL setup the bridge was written for.
const (
	DefaultModbusPort      = "502"
	DefaultUnitID          = 1
	DefaultTimeoutMs       = 3000
	DefaultIntervalSeconds = 10
	DefaultMQTTPort        = "1883"
	DefaultClientID        = "invt-bridge"
	DefaultStateTopic      = "invt/state"
	DefaultDiscoveryPrefix = "homeassistant"
	DefaultLogLevel        = "info"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ---- source ----
	cfg.Source.Endpoint = withDefaultPort(strings.TrimSpace(cfg.Source.Endpoint), DefaultModbusPort)
	if cfg.Source.UnitID == 0 {
		cfg.Source.UnitID = DefaultUnitID
	}
	if cfg.Source.TimeoutMs == 0 {
		cfg.Source.TimeoutMs = DefaultTimeoutMs
	}

	// ---- poll ----
	if cfg.Poll.IntervalSeconds == 0 {
		cfg.Poll.IntervalSeconds = DefaultIntervalSeconds
	}

	// ---- mqtt ----
	cfg.MQTT.Broker = brokerURL(strings.TrimSpace(cfg.MQTT.Broker))
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = DefaultClientID
	}
	if cfg.MQTT.StateTopic == "" {
		cfg.MQTT.StateTopic = DefaultStateTopic
	}
	if cfg.MQTT.DiscoveryPrefix == "" {
		cfg.MQTT.DiscoveryPrefix = DefaultDiscoveryPrefix
	}

	// ---- device ----
	d := &cfg.Device
	if len(d.Identifiers) == 0 {
		d.Identifiers = []string{"invt_001"}
	}
	if d.Name == "" {
		d.Name = "INVT"
	}
	if d.Manufacturer == "" {
		d.Manufacturer = "INVT"
	}
	if d.Model == "" {
		d.Model = "XD6KTL"
	}
	if d.SWVersion == "" {
		d.SWVersion = "425-422-0-101"
	}
	if d.HWVersion == "" {
		d.HWVersion = "V1.0"
	}

	// ---- log ----
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// withDefaultPort turns "host" into "host:port"; "host:port" is kept.
func withDefaultPort(addr, port string) string {
	if addr == "" {
		return addr
	}
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(strings.Trim(addr, "[]"), port)
}

// brokerURL turns "host" or "host:port" into a paho broker URL.
// Anything that already carries a scheme is kept as is.
func brokerURL(addr string) string {
	if addr == "" || strings.Contains(addr, "://") {
		return addr
	}
	return "tcp://" + withDefaultPort(addr, DefaultMQTTPort)
}
