// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a yaml config file. An empty path yields a zero Config,
// which is expected to be completed by ApplyEnv and Normalize.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Environment variables understood by ApplyEnv.
const (
	EnvModbusAddress  = "MODBUS_TCP_IP"
	EnvModbusUnitID   = "MODBUS_UNIT_ID"
	EnvMQTTBroker     = "MQTT_BROKER_ADDRESS"
	EnvMQTTUsername   = "MQTT_USERNAME"
	EnvMQTTPassword   = "MQTT_PASSWORD"
	EnvMQTTTopic      = "MQTT_TOPIC"
	EnvUpdateInterval = "UPDATE_INTERVAL"
	EnvSerialNumber   = "INVT_SERIAL_NUMBER"
	EnvSensorsFile    = "SENSORS_FILE"
	EnvMetricsAddress = "METRICS_LISTEN_ADDRESS"
	EnvLogLevel       = "LOG_LEVEL"
)

// ApplyEnv overrides cfg with any set, non-empty environment variables.
// It is the only place the process environment is consulted.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvModbusAddress); ok {
		cfg.Source.Endpoint = v
	}
	if v, ok := get(EnvModbusUnitID); ok {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvModbusUnitID, err)
		}
		cfg.Source.UnitID = uint8(n)
	}
	if v, ok := get(EnvMQTTBroker); ok {
		cfg.MQTT.Broker = v
	}
	if v, ok := get(EnvMQTTUsername); ok {
		cfg.MQTT.Username = v
	}
	if v, ok := get(EnvMQTTPassword); ok {
		cfg.MQTT.Password = v
	}
	if v, ok := get(EnvMQTTTopic); ok {
		cfg.MQTT.StateTopic = v
	}
	if v, ok := get(EnvUpdateInterval); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: must be whole seconds: %w", EnvUpdateInterval, err)
		}
		cfg.Poll.IntervalSeconds = n
	}
	if v, ok := get(EnvSerialNumber); ok {
		cfg.Device.SerialNumber = v
	}
	if v, ok := get(EnvSensorsFile); ok {
		cfg.SensorsFile = v
	}
	if v, ok := get(EnvMetricsAddress); ok {
		cfg.Metrics.ListenAddress = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.Log.Level = v
	}

	return nil
}
