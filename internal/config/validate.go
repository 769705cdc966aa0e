// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Validate checks configuration correctness.
// It performs declarative validation only; zero values that Normalize
// fills with defaults are accepted.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	// ------------------------------------------------------------
	// SOURCE
	// ------------------------------------------------------------

	if strings.TrimSpace(cfg.Source.Endpoint) == "" {
		return errors.New("source.endpoint is required (or set " + EnvModbusAddress + ")")
	}
	if strings.Contains(cfg.Source.Endpoint, ":") {
		if err := validateHostPort(cfg.Source.Endpoint); err != nil {
			return fmt.Errorf("source.endpoint: %w", err)
		}
	}
	if cfg.Source.TimeoutMs < 0 {
		return fmt.Errorf("source.timeout_ms must be >= 0, got %d", cfg.Source.TimeoutMs)
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalSeconds < 0 {
		return fmt.Errorf("poll.interval_seconds must be >= 1, got %d", cfg.Poll.IntervalSeconds)
	}

	// ------------------------------------------------------------
	// MQTT
	// ------------------------------------------------------------

	if strings.TrimSpace(cfg.MQTT.Broker) == "" {
		return errors.New("mqtt.broker is required (or set " + EnvMQTTBroker + ")")
	}
	if cfg.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", cfg.MQTT.QoS)
	}
	if err := validateTopic(cfg.MQTT.StateTopic); err != nil {
		return fmt.Errorf("mqtt.state_topic: %w", err)
	}
	if err := validateTopic(cfg.MQTT.DiscoveryPrefix); err != nil {
		return fmt.Errorf("mqtt.discovery_prefix: %w", err)
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	for i, id := range cfg.Device.Identifiers {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("device.identifiers[%d] must not be empty", i)
		}
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if cfg.Log.Level != "" {
		if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	return nil
}

func validateHostPort(s string) error {
	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return err
	}
	if host == "" {
		return errors.New("host is empty")
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid port %q", port)
	}
	return nil
}

// validateTopic rejects wildcards in a publish topic. Empty is allowed
// (Normalize supplies a default).
func validateTopic(t string) error {
	if strings.ContainsAny(t, "+#") {
		return fmt.Errorf("%q must not contain MQTT wildcards", t)
	}
	if strings.HasPrefix(t, "/") || strings.HasSuffix(t, "/") {
		return fmt.Errorf("%q must not start or end with '/'", t)
	}
	return nil
}
