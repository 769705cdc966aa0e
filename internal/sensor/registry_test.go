// internal/sensor/registry_test.go
package sensor

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tamzrod/invt-mqtt-bridge/internal/register"
)

// helper to build a bare definition quickly
func bare(id string, addr uint16, t register.DataType, scale float64) Definition {
	return Definition{Descriptor: Descriptor{ID: id, Address: addr, Type: t, Scale: scale}}
}

func TestNew_PreservesOrder(t *testing.T) {
	r, err := New([]Definition{
		bare("B", 2, register.U16, 1),
		bare("A", 1, register.S32, 0.1),
		bare("C", 0, register.U16, 1),
	})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	got := strings.Join(r.IDs(), ",")
	if got != "B,A,C" {
		t.Fatalf("expected order B,A,C, got %s", got)
	}
	if r.Len() != 3 {
		t.Fatalf("expected 3 sensors, got %d", r.Len())
	}
}

func TestNew_SharedAddressAllowed(t *testing.T) {
	_, err := New([]Definition{
		bare("PV2_CURR", 0x3839, register.S16, 0.01),
		bare("CT_CURR", 0x3839, register.S16, 0.01),
	})
	if err != nil {
		t.Fatalf("shared address must be legal, got %v", err)
	}
}

func TestNew_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		defs  []Definition
		field string
	}{
		{"zero scale", []Definition{bare("A", 1, register.U16, 0)}, "scale"},
		{"negative scale", []Definition{bare("A", 1, register.U16, -0.1)}, "scale"},
		{"nan scale", []Definition{bare("A", 1, register.U16, math.NaN())}, "scale"},
		{"inf scale", []Definition{bare("A", 1, register.U16, math.Inf(1))}, "scale"},
		{"unknown type", []Definition{bare("A", 1, register.DataType(0), 1)}, "type"},
		{"out of range type", []Definition{bare("A", 1, register.DataType(7), 1)}, "type"},
		{"empty id", []Definition{bare("", 1, register.U16, 1)}, "id"},
		{"wildcard id", []Definition{bare("BAT+_DAY", 1, register.U16, 1)}, "id"},
		{"slash id", []Definition{bare("a/b", 1, register.U16, 1)}, "id"},
		{"duplicate id", []Definition{bare("A", 1, register.U16, 1), bare("A", 2, register.U16, 1)}, "id"},
		{"32-bit at top of space", []Definition{bare("A", 0xFFFF, register.U32, 1)}, "address"},
	}

	for _, c := range cases {
		_, err := New(c.defs)
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: expected ConfigError, got %v", c.name, err)
		}
		if ce.Field != c.field {
			t.Fatalf("%s: expected field %q, got %q", c.name, c.field, ce.Field)
		}
	}
}

func TestNew_Empty(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}

func TestMetadata_Fallback(t *testing.T) {
	r, err := New([]Definition{
		bare("RAW", 1, register.U16, 1),
		{
			Descriptor: Descriptor{ID: "NAMED", Address: 2, Type: register.U16, Scale: 1},
			Metadata:   &Metadata{Icon: "mdi:flash", DeviceClass: "voltage"},
		},
	})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	m := r.Metadata("RAW")
	if m.DisplayName != "RAW" || m.Icon != "" || m.DeviceClass != "" || m.StateClass != "" {
		t.Fatalf("unexpected fallback metadata: %+v", m)
	}

	m = r.Metadata("NAMED")
	if m.DisplayName != "NAMED" {
		t.Fatalf("expected display name to fall back to id, got %q", m.DisplayName)
	}
	if m.Icon != "mdi:flash" || m.DeviceClass != "voltage" {
		t.Fatalf("unexpected metadata: %+v", m)
	}
}

func TestDescriptors_ReturnsCopy(t *testing.T) {
	r, err := New([]Definition{bare("A", 1, register.U16, 1)})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	ds := r.Descriptors()
	ds[0].ID = "mutated"

	d, ok := r.Lookup("A")
	if !ok || d.ID != "A" {
		t.Fatalf("registry was mutated through Descriptors()")
	}
}

func TestDefault(t *testing.T) {
	r := Default()

	if r.Len() != 41 {
		t.Fatalf("expected 41 built-in sensors, got %d", r.Len())
	}

	d, ok := r.Lookup("IMPORT_EN_TOTAL")
	if !ok {
		t.Fatalf("IMPORT_EN_TOTAL missing")
	}
	if d.Address != 0x3899 || d.Type != register.U32 || d.Unit != "kWh" || d.Words() != 2 {
		t.Fatalf("unexpected IMPORT_EN_TOTAL descriptor: %+v", d)
	}

	pv2, _ := r.Lookup("PV2_CURR")
	ct, _ := r.Lookup("CT_CURR")
	if pv2.Address != ct.Address {
		t.Fatalf("PV2_CURR and CT_CURR should share an address")
	}

	if m := r.Metadata("BAT_SOC"); m.DisplayName != "Battery State of Charge" || m.DeviceClass != "battery" {
		t.Fatalf("unexpected BAT_SOC metadata: %+v", m)
	}
}
