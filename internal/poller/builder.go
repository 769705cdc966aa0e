// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/invt-mqtt-bridge/internal/config"
	pmodbus "github.com/tamzrod/invt-mqtt-bridge/internal/poller/modbus"
	"github.com/tamzrod/invt-mqtt-bridge/internal/sensor"
)

// Build constructs a Poller and wires the Modbus client lifecycle.
// The connection is dialed once here (fail fast at startup) and reused;
// reconnecting after a drop is left to the client.
func Build(c *cfg.Config, registry *sensor.Registry) (*Poller, func() error, error) {
	client, err := pmodbus.New(pmodbus.Config{
		Endpoint: c.Source.Endpoint,
		Timeout:  time.Duration(c.Source.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	p, err := New(
		Config{
			UnitID:   c.Source.UnitID,
			Interval: time.Duration(c.Poll.IntervalSeconds) * time.Second,
		},
		registry,
		client,
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, client.Close, nil
}
