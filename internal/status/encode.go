// internal/status/encode.go
package status

// Encode maps a Snapshot onto the availability payload.
// Only a healthy device is online; unknown counts as offline.
// No IO. No side effects.
func Encode(s Snapshot) string {
	if s.Health == HealthOK {
		return PayloadOnline
	}
	return PayloadOffline
}
