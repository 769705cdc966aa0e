// internal/status/constants.go
package status

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state, before the first cycle.
const HealthUnknown uint16 = 0

// HealthOK means at least one sensor answered in the last cycle.
const HealthOK uint16 = 1

// HealthError means every sensor failed in the last cycle.
const HealthError uint16 = 2

// ---- AVAILABILITY PAYLOADS ----

// PayloadOnline and PayloadOffline are the retained availability values.
// Home Assistant's defaults, so discovery does not need to name them.
const (
	PayloadOnline  = "online"
	PayloadOffline = "offline"
)
