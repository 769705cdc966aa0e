// internal/publisher/builder.go
package publisher

import (
	"time"

	cfg "github.com/tamzrod/invt-mqtt-bridge/internal/config"
	pmqtt "github.com/tamzrod/invt-mqtt-bridge/internal/publisher/mqtt"
)

// BuildPlan converts the config into a publish Plan.
// Assumes config has already been validated and normalized.
func BuildPlan(c *cfg.Config) Plan {
	d := c.Device
	return Plan{
		Topics: Topics{
			State:           c.MQTT.StateTopic,
			Availability:    c.MQTT.AvailabilityTopic(),
			DiscoveryPrefix: c.MQTT.DiscoveryPrefix,
		},
		QoS:       c.MQTT.QoS,
		Discovery: c.MQTT.DiscoveryEnabled(),
		Device: Device{
			Identifiers:  append([]string(nil), d.Identifiers...),
			Name:         d.Name,
			Manufacturer: d.Manufacturer,
			Model:        d.Model,
			SWVersion:    d.SWVersion,
			HWVersion:    d.HWVersion,
			SerialNumber: d.SerialNumber,
		},
	}
}

// BuildTransport connects the MQTT client described by c.
// The availability topic doubles as the last will.
func BuildTransport(c *cfg.Config) (*pmqtt.Client, func() error, error) {
	client, err := pmqtt.New(pmqtt.Config{
		Broker:         c.MQTT.Broker,
		ClientID:       c.MQTT.ClientID,
		Username:       c.MQTT.Username,
		Password:       c.MQTT.Password,
		WillTopic:      c.MQTT.AvailabilityTopic(),
		ConnectTimeout: 10 * time.Second,
		PublishTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}
