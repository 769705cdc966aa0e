// internal/sensor/invt.go
package sensor

import "github.com/tamzrod/invt-mqtt-bridge/internal/register"

// INVT XD6KTL holding register map.
//
// 32-bit entries point at the HIGH word, e.g. IMPORT_EN_TOTAL:
//   0x3899 total purchased energy, high 16 bits
//   0x389A total purchased energy, low 16 bits
//
// PV2_CURR and CT_CURR share 0x3839. Both are read independently.
// BAT_DISCARGE_DAY keeps its historical spelling so unique ids stay stable.
var invtTable = []Definition{
	def("EPS_V", 0x3115, register.U16, 0.1, "V", "EPS Voltage", "mdi:flash", "voltage", "measurement"),
	def("PBUS_V", 0x380F, register.U16, 0.1, "V", "PBUS Voltage", "mdi:flash", "voltage", "measurement"),
	def("GRID_V", 0x3814, register.U16, 0.1, "V", "Grid Voltage", "mdi:transmission-tower", "voltage", "measurement"),
	def("GRID_CURR", 0x3817, register.S16, 0.01, "A", "Grid Current", "mdi:current-ac", "current", "measurement"),
	def("GRID_FREQ", 0x381A, register.U16, 0.01, "Hz", "Grid Frequency", "mdi:sine-wave", "frequency", "measurement"),
	def("LOAD_PWR", 0x381C, register.U16, 0.1, "kW", "Load Power", "mdi:power-plug", "power", "measurement"),
	def("ACTIVE_PWR", 0x381D, register.S32, 0.1, "W", "Active Power", "mdi:lightning-bolt-circle", "power", "measurement"),
	def("REACTIVE_PWR", 0x381F, register.S32, 0.1, "Var", "Reactive Power", "mdi:flash-off", "reactive_power", "measurement"),
	def("INVT_TEMP", 0x3822, register.S16, 0.1, "ºC", "Inverter Temperature", "mdi:thermometer", "temperature", "measurement"),
	def("AMBIENT_TEMP", 0x3825, register.S16, 0.1, "ºC", "Ambient Temperature", "mdi:thermometer", "temperature", "measurement"),
	def("RADIATOR_TEMP", 0x3826, register.S16, 0.1, "ºC", "Radiator Temperature", "mdi:radiator", "temperature", "measurement"),
	def("METER_PWR", 0x3827, register.S32, 0.1, "W", "Power Meter", "mdi:meter-electric", "power", "measurement"),
	def("LEAKAGE_CURR", 0x3829, register.S16, 0.1, "mA", "Leakage Current", "mdi:current-ac", "current", "measurement"),
	def("DERAT_PWR", 0x382A, register.U32, 0.1, "W", "Derated Power", "mdi:power-settings", "power", "measurement"),
	def("DERAT_MODE", 0x382C, register.U16, 0.1, "", "Derating Mode", "mdi:alert-circle", "enum", "measurement"),
	def("PV_EN_DAY", 0x382F, register.U16, 0.1, "kWh", "PV Energy Today", "mdi:solar-power", "energy", "total_increasing"),
	def("DC_OHM", 0x3835, register.U16, 1, "kΩ", "DC Isolation Resistance", "mdi:resistor", "power", "measurement"),
	def("PV1_V", 0x3836, register.U16, 0.1, "V", "PV1 Voltage", "mdi:solar-power", "voltage", "measurement"),
	def("PV1_CURR", 0x3837, register.S16, 0.01, "A", "PV1 Current", "mdi:current-dc", "current", "measurement"),
	def("PV2_V", 0x3838, register.U16, 0.1, "V", "PV2 Voltage", "mdi:solar-power", "voltage", "measurement"),
	def("PV2_CURR", 0x3839, register.S16, 0.01, "A", "PV2 Current", "mdi:current-dc", "current", "measurement"),
	def("CT_CURR", 0x3839, register.S16, 0.01, "A", "CT Current", "mdi:current-ac", "current", "measurement"),
	def("LOAD_EN_DAY", 0x3892, register.U16, 0.1, "kWh", "Load Energy Today", "mdi:power-plug", "energy", "total_increasing"),
	def("LOAD_EN_TOTAL", 0x3893, register.U32, 0.1, "kWh", "Total Load Energy", "mdi:power-plug", "energy", "total"),
	def("EXPORT_EN_DAY", 0x3895, register.U16, 0.1, "kWh", "Export Energy Today", "mdi:home-export-outline", "energy", "total_increasing"),
	def("EXPORT_EN_TOTAL", 0x3896, register.U32, 0.1, "kWh", "Total Export Energy", "mdi:home-export-outline", "energy", "total"),
	def("IMPORT_EN_DAY", 0x3898, register.U16, 0.1, "kWh", "Import Energy Today", "mdi:home-import-outline", "energy", "total_increasing"),
	def("IMPORT_EN_TOTAL", 0x3899, register.U32, 0.1, "kWh", "Total Import Energy", "mdi:home-import-outline", "energy", "total"),
	def("BAT_CHARGE_DAY", 0x389B, register.U16, 0.1, "kWh", "Battery Charge Today", "mdi:battery-plus-outline", "energy", "total_increasing"),
	def("BAT_CHARGE_TOTAL", 0x389C, register.U32, 0.1, "kWh", "Total Battery Charge", "mdi:battery-plus-outline", "energy", "total"),
	def("BAT_DISCARGE_DAY", 0x389E, register.U16, 0.1, "kWh", "Battery Discharge Today", "mdi:battery-minus-outline", "energy", "total_increasing"),
	def("BAT_DISCHARGE_TOTAL", 0x389F, register.U32, 0.1, "kWh", "Total Battery Discharge", "mdi:battery-minus-outline", "energy", "total"),
	def("BAT_PWR", 0x3908, register.S32, 0.1, "W", "Battery Power", "mdi:battery-outline", "power", "measurement"),
	def("BAT_V", 0x390A, register.U16, 0.1, "V", "Battery Voltage", "mdi:battery-outline", "voltage", "measurement"),
	def("BAT_CURR", 0x390B, register.S16, 0.1, "A", "Battery Current", "mdi:current-dc", "current", "measurement"),
	def("EPS_PWR", 0x3929, register.S32, 0.1, "W", "EPS Power", "mdi:power-plug", "power", "measurement"),
	def("BAT_SOC", 0x393B, register.U16, 1, "%", "Battery State of Charge", "mdi:battery", "battery", "measurement"),
	def("BAT_SOH", 0x393C, register.U16, 1, "%", "Battery State of Health", "mdi:battery-heart", "battery", "measurement"),
	def("BAT_TEMP", 0x394D, register.U16, 0.1, "ºC", "Battery Temperature", "mdi:thermometer", "temperature", "measurement"),
	def("PV1_PWR", 0x3B01, register.U16, 0.1, "W", "PV1 Power", "mdi:solar-power", "power", "measurement"),
	def("PV2_PWR", 0x3B02, register.U16, 0.1, "W", "PV2 Power", "mdi:solar-power", "power", "measurement"),
}

func def(id string, addr uint16, t register.DataType, scale float64, unit, name, icon, deviceClass, stateClass string) Definition {
	return Definition{
		Descriptor: Descriptor{ID: id, Address: addr, Type: t, Scale: scale, Unit: unit},
		Metadata: &Metadata{
			DisplayName: name,
			Icon:        icon,
			DeviceClass: deviceClass,
			StateClass:  stateClass,
		},
	}
}

// Default returns the built-in INVT XD6KTL registry.
func Default() *Registry {
	r, err := New(invtTable)
	if err != nil {
		// the table is static; failing here is a programming error
		panic(err)
	}
	return r
}
