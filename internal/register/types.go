// internal/register/types.go
package register

import (
	"fmt"
	"strings"
)

// Width is the number of bits a value occupies on the wire.
type Width uint8

const (
	Width16 Width = 16
	Width32 Width = 32
)

// DataType is the closed set of register encodings the bridge understands.
// Width16/Width32 x Unsigned/Signed. The zero value is invalid.
type DataType uint8

const (
	U16 DataType = iota + 1
	S16
	U32
	S32
)

// ParseDataType maps the register table tag ("U16", "S16", "U32", "S32")
// to a DataType. Matching is case-insensitive.
func ParseDataType(s string) (DataType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "U16":
		return U16, nil
	case "S16":
		return S16, nil
	case "U32":
		return U32, nil
	case "S32":
		return S32, nil
	default:
		return 0, fmt.Errorf("register: unsupported data type %q", s)
	}
}

// Valid reports whether t is one of the four known encodings.
func (t DataType) Valid() bool {
	return t >= U16 && t <= S32
}

// Width returns the bit width of t, or 0 for an invalid type.
func (t DataType) Width() Width {
	switch t {
	case U16, S16:
		return Width16
	case U32, S32:
		return Width32
	default:
		return 0
	}
}

// Signed reports whether t is two's-complement.
func (t DataType) Signed() bool {
	return t == S16 || t == S32
}

// Words is the number of 16-bit registers a value of type t spans.
func (t DataType) Words() uint16 {
	switch t.Width() {
	case Width16:
		return 1
	case Width32:
		return 2
	default:
		return 0
	}
}

func (t DataType) String() string {
	switch t {
	case U16:
		return "U16"
	case S16:
		return "S16"
	case U32:
		return "U32"
	case S32:
		return "S32"
	default:
		return fmt.Sprintf("DataType(%d)", uint8(t))
	}
}

// UnmarshalYAML lets sensor tables spell the type as a plain string.
func (t *DataType) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseDataType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalYAML writes the type tag back out.
func (t DataType) MarshalYAML() (any, error) {
	return t.String(), nil
}
