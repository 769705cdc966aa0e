// internal/sensor/types.go
package sensor

import "github.com/tamzrod/invt-mqtt-bridge/internal/register"

// Descriptor tells the poller where a quantity lives and how to decode it.
// For 32-bit types Address is the HIGH word; the LOW word is Address+1.
type Descriptor struct {
	ID      string
	Address uint16
	Type    register.DataType
	Scale   float64
	Unit    string
}

// Words is the number of registers one read of d spans.
func (d Descriptor) Words() uint16 {
	return d.Type.Words()
}

// Metadata is presentation only. It never affects polling.
type Metadata struct {
	DisplayName string
	Icon        string
	DeviceClass string
	StateClass  string
}

// Definition pairs a descriptor with optional metadata.
// A nil Metadata means "use the fallbacks".
type Definition struct {
	Descriptor
	Metadata *Metadata
}
