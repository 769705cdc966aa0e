// internal/sensor/errors.go
package sensor

import "fmt"

// ConfigError is an invalid sensor table entry.
// It is only ever produced while building a Registry.
type ConfigError struct {
	Index    int // position in the table
	SensorID string
	Field    string
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.SensorID == "" {
		return fmt.Sprintf("sensor #%d: %s: %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("sensor %q: %s: %s", e.SensorID, e.Field, e.Reason)
}
