// internal/sensor/registry.go
package sensor

import (
	"errors"
	"math"
	"strings"
)

// Registry is the ordered, immutable sensor table.
// Build it once with New and share it read-only.
type Registry struct {
	descriptors []Descriptor
	index       map[string]int
	metadata    map[string]Metadata
}

// New validates defs and freezes them into a Registry.
// Table order is preserved.
func New(defs []Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, errors.New("sensor: registry must contain at least one sensor")
	}

	r := &Registry{
		descriptors: make([]Descriptor, 0, len(defs)),
		index:       make(map[string]int, len(defs)),
		metadata:    make(map[string]Metadata),
	}

	for i, def := range defs {
		d := def.Descriptor

		if err := validateID(i, d.ID); err != nil {
			return nil, err
		}
		if _, dup := r.index[d.ID]; dup {
			return nil, &ConfigError{Index: i, SensorID: d.ID, Field: "id", Reason: "duplicate id"}
		}
		if !d.Type.Valid() {
			return nil, &ConfigError{Index: i, SensorID: d.ID, Field: "type", Reason: "must be one of U16, S16, U32, S32"}
		}
		if math.IsNaN(d.Scale) || math.IsInf(d.Scale, 0) || d.Scale <= 0 {
			return nil, &ConfigError{Index: i, SensorID: d.ID, Field: "scale", Reason: "must be a positive finite number"}
		}
		// a 32-bit value at 0xFFFF would need a low word at 0x10000
		if uint32(d.Address)+uint32(d.Words()) > 0x10000 {
			return nil, &ConfigError{Index: i, SensorID: d.ID, Field: "address", Reason: "register span exceeds address space"}
		}

		r.index[d.ID] = len(r.descriptors)
		r.descriptors = append(r.descriptors, d)

		if def.Metadata != nil {
			r.metadata[d.ID] = *def.Metadata
		}
	}

	return r, nil
}

// validateID keeps ids usable as JSON keys and MQTT topic levels.
func validateID(i int, id string) error {
	if id == "" {
		return &ConfigError{Index: i, Field: "id", Reason: "required"}
	}
	if strings.ContainsAny(id, "+#/ \t\r\n") {
		return &ConfigError{Index: i, SensorID: id, Field: "id", Reason: "must not contain whitespace, '/', '+' or '#'"}
	}
	return nil
}

// Len is the number of sensors.
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// Descriptors returns a copy of the table in registry order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// IDs returns the sensor ids in registry order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		out[i] = d.ID
	}
	return out
}

// Lookup finds a descriptor by id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// Metadata returns the presentation metadata for id.
// Missing entries fall back to the id as display name and empty fields.
func (r *Registry) Metadata(id string) Metadata {
	m, ok := r.metadata[id]
	if !ok {
		return Metadata{DisplayName: id}
	}
	if m.DisplayName == "" {
		m.DisplayName = id
	}
	return m
}
