// internal/publisher/discovery_test.go
package publisher

import (
	"encoding/json"
	"testing"

	"github.com/tamzrod/invt-mqtt-bridge/internal/register"
	"github.com/tamzrod/invt-mqtt-bridge/internal/sensor"
)

func decode(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("invalid json %s: %v", b, err)
	}
	return m
}

func TestRenderDiscovery_WithMetadata(t *testing.T) {
	device := Device{
		Identifiers:  []string{"invt_001"},
		Name:         "INVT",
		Manufacturer: "INVT",
		Model:        "XD6KTL",
		SWVersion:    "425-422-0-101",
		HWVersion:    "V1.0",
	}
	topics := Topics{State: "invt/state", Availability: "invt/state/availability", DiscoveryPrefix: "homeassistant"}

	msgs, err := RenderDiscovery(sensor.Default(), device, topics)
	if err != nil {
		t.Fatalf("RenderDiscovery() err=%v", err)
	}
	if len(msgs) != sensor.Default().Len() {
		t.Fatalf("expected %d messages, got %d", sensor.Default().Len(), len(msgs))
	}

	var grid Message
	for _, m := range msgs {
		if m.Topic == "homeassistant/sensor/GRID_V/config" {
			grid = m
		}
	}
	if grid.Topic == "" || !grid.Retained {
		t.Fatalf("GRID_V config missing or not retained")
	}

	p := decode(t, grid.Payload)
	checks := map[string]any{
		"name":                "Grid Voltage",
		"state_topic":         "invt/state",
		"availability_topic":  "invt/state/availability",
		"device_class":        "voltage",
		"state_class":         "measurement",
		"unit_of_measurement": "V",
		"value_template":      "{{ value_json.GRID_V }}",
		"unique_id":           "invt_001_GRID_V",
		"icon":                "mdi:transmission-tower",
	}
	for k, want := range checks {
		if p[k] != want {
			t.Fatalf("%s: got %v want %v", k, p[k], want)
		}
	}

	dev, ok := p["device"].(map[string]any)
	if !ok {
		t.Fatalf("device block missing: %v", p)
	}
	if dev["model"] != "XD6KTL" || dev["serial_number"] != nil {
		t.Fatalf("unexpected device block: %v", dev)
	}
	ids, _ := dev["identifiers"].([]any)
	if len(ids) != 1 || ids[0] != "invt_001" {
		t.Fatalf("unexpected identifiers: %v", dev["identifiers"])
	}
}

func TestRenderDiscovery_FallbackMetadata(t *testing.T) {
	reg, err := sensor.New([]sensor.Definition{
		{Descriptor: sensor.Descriptor{ID: "raw-1", Address: 1, Type: register.U16, Scale: 1}},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	msgs, err := RenderDiscovery(reg, Device{}, Topics{State: "s", DiscoveryPrefix: "ha"})
	if err != nil {
		t.Fatalf("RenderDiscovery() err=%v", err)
	}

	p := decode(t, msgs[0].Payload)
	if p["name"] != "raw-1" || p["unique_id"] != "raw-1" {
		t.Fatalf("unexpected fallbacks: %v", p)
	}
	for _, k := range []string{"device_class", "state_class", "unit_of_measurement", "icon"} {
		v, present := p[k]
		if !present || v != nil {
			t.Fatalf("%s: expected explicit null, got %v (present=%v)", k, v, present)
		}
	}
	if _, present := p["availability_topic"]; present {
		t.Fatalf("availability_topic must be omitted when disabled")
	}
	if p["value_template"] != "{{ value_json['raw-1'] }}" {
		t.Fatalf("unexpected template: %v", p["value_template"])
	}
}

func TestRenderDiscovery_Rejects(t *testing.T) {
	if _, err := RenderDiscovery(nil, Device{}, Topics{State: "s", DiscoveryPrefix: "ha"}); err == nil {
		t.Fatalf("expected error for nil registry")
	}
	if _, err := RenderDiscovery(sensor.Default(), Device{}, Topics{DiscoveryPrefix: "ha"}); err == nil {
		t.Fatalf("expected error for missing state topic")
	}
}

func TestValueTemplate(t *testing.T) {
	cases := map[string]string{
		"GRID_V": "{{ value_json.GRID_V }}",
		"_x1":    "{{ value_json._x1 }}",
		"1ST":    "{{ value_json['1ST'] }}",
		"a.b":    "{{ value_json['a.b'] }}",
	}
	for id, want := range cases {
		if got := valueTemplate(id); got != want {
			t.Fatalf("%s: got %q want %q", id, got, want)
		}
	}
}
