// internal/config/validate_test.go
package config

import "testing"

// helper to build a minimal valid config quickly
func minimal() *Config {
	return &Config{
		Source: SourceConfig{Endpoint: "192.168.1.50"},
		MQTT:   MQTTConfig{Broker: "broker.local"},
	}
}

// ---- tests ----

func TestValidate_Minimal(t *testing.T) {
	if err := Validate(minimal()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing endpoint", func(c *Config) { c.Source.Endpoint = "" }},
		{"bad endpoint port", func(c *Config) { c.Source.Endpoint = "host:port" }},
		{"endpoint port out of range", func(c *Config) { c.Source.Endpoint = "host:70000" }},
		{"endpoint without host", func(c *Config) { c.Source.Endpoint = ":502" }},
		{"negative timeout", func(c *Config) { c.Source.TimeoutMs = -1 }},
		{"negative interval", func(c *Config) { c.Poll.IntervalSeconds = -5 }},
		{"missing broker", func(c *Config) { c.MQTT.Broker = " " }},
		{"qos 3", func(c *Config) { c.MQTT.QoS = 3 }},
		{"wildcard state topic", func(c *Config) { c.MQTT.StateTopic = "invt/#" }},
		{"trailing slash topic", func(c *Config) { c.MQTT.StateTopic = "invt/" }},
		{"wildcard discovery prefix", func(c *Config) { c.MQTT.DiscoveryPrefix = "home+assistant" }},
		{"empty identifier", func(c *Config) { c.Device.Identifiers = []string{"a", ""} }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tc := range cases {
		c := minimal()
		tc.mutate(c)
		if err := Validate(c); err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	c := minimal()
	if err := Validate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Source.Endpoint != "192.168.1.50" || c.Poll.IntervalSeconds != 0 || c.MQTT.StateTopic != "" {
		t.Fatalf("Validate mutated config: %+v", c)
	}
}

func TestValidate_Nil(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
