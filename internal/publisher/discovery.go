// internal/publisher/discovery.go
package publisher

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tamzrod/invt-mqtt-bridge/internal/sensor"
)

type discoveryDevice struct {
	Identifiers  []string `json:"identifiers"`
	Name         *string  `json:"name"`
	Manufacturer *string  `json:"manufacturer"`
	Model        *string  `json:"model"`
	SWVersion    *string  `json:"sw_version"`
	HWVersion    *string  `json:"hw_version"`
	SerialNumber *string  `json:"serial_number"`
}

type discoveryPayload struct {
	Name              string          `json:"name"`
	StateTopic        string          `json:"state_topic"`
	AvailabilityTopic *string         `json:"availability_topic,omitempty"`
	DeviceClass       *string         `json:"device_class"`
	StateClass        *string         `json:"state_class"`
	Unit              *string         `json:"unit_of_measurement"`
	ValueTemplate     string          `json:"value_template"`
	UniqueID          string          `json:"unique_id"`
	Icon              *string         `json:"icon"`
	Device            discoveryDevice `json:"device"`
}

// RenderDiscovery builds one retained config message per sensor,
// in registry order, at <prefix>/sensor/<id>/config.
//
// Absent metadata renders as JSON null; Home Assistant then applies
// its own defaults.
func RenderDiscovery(reg *sensor.Registry, device Device, topics Topics) ([]Message, error) {
	if reg == nil {
		return nil, errors.New("publisher: nil registry")
	}
	if topics.State == "" || topics.DiscoveryPrefix == "" {
		return nil, errors.New("publisher: state topic and discovery prefix are required")
	}

	dev := discoveryDevice{
		Identifiers:  device.Identifiers,
		Name:         nullable(device.Name),
		Manufacturer: nullable(device.Manufacturer),
		Model:        nullable(device.Model),
		SWVersion:    nullable(device.SWVersion),
		HWVersion:    nullable(device.HWVersion),
		SerialNumber: nullable(device.SerialNumber),
	}
	if dev.Identifiers == nil {
		dev.Identifiers = []string{}
	}

	out := make([]Message, 0, reg.Len())
	for _, d := range reg.Descriptors() {
		meta := reg.Metadata(d.ID)

		p := discoveryPayload{
			Name:              meta.DisplayName,
			StateTopic:        topics.State,
			AvailabilityTopic: nullable(topics.Availability),
			DeviceClass:       nullable(meta.DeviceClass),
			StateClass:        nullable(meta.StateClass),
			Unit:              nullable(d.Unit),
			ValueTemplate:     valueTemplate(d.ID),
			UniqueID:          uniqueID(device, d.ID),
			Icon:              nullable(meta.Icon),
			Device:            dev,
		}

		b, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}

		out = append(out, Message{
			Topic:    DiscoveryTopic(topics.DiscoveryPrefix, d.ID),
			Payload:  b,
			Retained: true,
		})
	}

	return out, nil
}

// DiscoveryTopic is <prefix>/sensor/<id>/config.
func DiscoveryTopic(prefix, id string) string {
	return strings.TrimSuffix(prefix, "/") + "/sensor/" + id + "/config"
}

func uniqueID(device Device, id string) string {
	if len(device.Identifiers) == 0 {
		return id
	}
	return device.Identifiers[0] + "_" + id
}

// valueTemplate extracts id from the state JSON. Ids that are not plain
// identifiers need subscript syntax in Jinja.
func valueTemplate(id string) string {
	if isIdentifier(id) {
		return "{{ value_json." + id + " }}"
	}
	return "{{ value_json['" + strings.ReplaceAll(id, "'", "\\'") + "'] }}"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
