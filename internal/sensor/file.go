// internal/sensor/file.go
package sensor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/invt-mqtt-bridge/internal/register"
)

// fileTable mirrors a sensors yaml file.
//
//	sensors:
//	  - id: GRID_V
//	    address: 0x3814
//	    type: U16
//	    scale: 0.1
//	    unit: V
//	    name: Grid Voltage
//	    icon: mdi:transmission-tower
//	    device_class: voltage
//	    state_class: measurement
type fileTable struct {
	Sensors []fileEntry `yaml:"sensors"`
}

type fileEntry struct {
	ID      string            `yaml:"id"`
	Address *uint16           `yaml:"address"`
	Type    register.DataType `yaml:"type"`
	Scale   *float64          `yaml:"scale"`
	Unit    string            `yaml:"unit"`

	Name        string `yaml:"name"`
	Icon        string `yaml:"icon"`
	DeviceClass string `yaml:"device_class"`
	StateClass  string `yaml:"state_class"`
}

// LoadFile reads a yaml sensor table and builds a Registry from it.
func LoadFile(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a yaml sensor table. Unknown keys are rejected.
func Parse(rd io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)

	var t fileTable
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("sensor: empty sensor table")
		}
		return nil, err
	}

	defs := make([]Definition, 0, len(t.Sensors))
	for i, e := range t.Sensors {
		if e.Address == nil {
			return nil, &ConfigError{Index: i, SensorID: e.ID, Field: "address", Reason: "required"}
		}
		// scale: 0 is a configuration error, an omitted scale means 1
		scale := 1.0
		if e.Scale != nil {
			scale = *e.Scale
		}

		d := Definition{
			Descriptor: Descriptor{
				ID:      e.ID,
				Address: *e.Address,
				Type:    e.Type,
				Scale:   scale,
				Unit:    e.Unit,
			},
		}
		if e.Name != "" || e.Icon != "" || e.DeviceClass != "" || e.StateClass != "" {
			d.Metadata = &Metadata{
				DisplayName: e.Name,
				Icon:        e.Icon,
				DeviceClass: e.DeviceClass,
				StateClass:  e.StateClass,
			}
		}
		defs = append(defs, d)
	}

	return New(defs)
}
