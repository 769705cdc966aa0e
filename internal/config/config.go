// internal/config/config.go
package config

type Config struct {
	Source      SourceConfig  `yaml:"source"`
	Poll        PollConfig    `yaml:"poll"`
	MQTT        MQTTConfig    `yaml:"mqtt"`
	Device      DeviceConfig  `yaml:"device"`
	SensorsFile string        `yaml:"sensors_file"` // empty => built-in INVT table
	Metrics     MetricsConfig `yaml:"metrics"`
	Log         LogConfig     `yaml:"log"`
}

// ---- SOURCE ----

type SourceConfig struct {
	Endpoint  string `yaml:"endpoint"` // host or host:port
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// ---- MQTT ----

type MQTTConfig struct {
	Broker          string `yaml:"broker"` // host, host:port or tcp://host:port
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	ClientID        string `yaml:"client_id"`
	StateTopic      string `yaml:"state_topic"`
	QoS             byte   `yaml:"qos"`
	Discovery       *bool  `yaml:"discovery"` // nil => true
	DiscoveryPrefix string `yaml:"discovery_prefix"`
}

// DiscoveryEnabled reports whether Home Assistant discovery is published.
func (m MQTTConfig) DiscoveryEnabled() bool {
	return m.Discovery == nil || *m.Discovery
}

// AvailabilityTopic is where online/offline is published.
func (m MQTTConfig) AvailabilityTopic() string {
	return m.StateTopic + "/availability"
}

// ---- DEVICE (discovery device block) ----

type DeviceConfig struct {
	Identifiers  []string `yaml:"identifiers"`
	Name         string   `yaml:"name"`
	Manufacturer string   `yaml:"manufacturer"`
	Model        string   `yaml:"model"`
	SWVersion    string   `yaml:"sw_version"`
	HWVersion    string   `yaml:"hw_version"`
	SerialNumber string   `yaml:"serial_number"`
}

// ---- METRICS ----

type MetricsConfig struct {
	ListenAddress string `yaml:"listen_address"` // empty => disabled
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
}
