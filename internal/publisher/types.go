// internal/publisher/types.go
package publisher

// Transport is the exact contract the publisher uses to reach the broker.
type Transport interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// Message is one rendered topic/payload pair.
type Message struct {
	Topic    string
	Payload  []byte
	Retained bool
}

// Topics groups every topic the bridge publishes to.
type Topics struct {
	State           string
	Availability    string // empty => availability is not published
	DiscoveryPrefix string
}

// Device is the shared device block announced with every sensor.
type Device struct {
	Identifiers  []string
	Name         string
	Manufacturer string
	Model        string
	SWVersion    string
	HWVersion    string
	SerialNumber string
}

// Plan is the fully-built publish plan.
type Plan struct {
	Topics    Topics
	QoS       byte
	Discovery bool
	Device    Device
}
