// internal/register/decode.go
package register

import (
	"fmt"
	"math"
)

// DecodeError reports register words that do not fit the requested type.
type DecodeError struct {
	Type DataType
	Got  int
}

func (e *DecodeError) Error() string {
	if !e.Type.Valid() {
		return fmt.Sprintf("register: cannot decode %s", e.Type)
	}
	return fmt.Sprintf("register: %s needs %d word(s), got %d", e.Type, e.Type.Words(), e.Got)
}

// Decode16 reconstructs a single register.
// Signed values are reinterpreted as two's complement: [-32768, 32767].
func Decode16(raw uint16, signed bool) int64 {
	v := int64(raw)
	if signed && v >= 0x8000 {
		v -= 0x10000
	}
	return v
}

// Decode32 reconstructs a high/low register pair (high word first).
// Signed values are reinterpreted as two's complement.
func Decode32(high, low uint16, signed bool) int64 {
	v := int64(uint32(high)<<16 | uint32(low))
	if signed && v >= 0x80000000 {
		v -= 0x100000000
	}
	return v
}

// Decode turns the words of one read into an integer according to t.
// words must hold exactly t.Words() registers, high word first.
func Decode(t DataType, words []uint16) (int64, error) {
	if !t.Valid() || len(words) != int(t.Words()) {
		return 0, &DecodeError{Type: t, Got: len(words)}
	}

	switch t {
	case U16:
		return Decode16(words[0], false), nil
	case S16:
		return Decode16(words[0], true), nil
	case U32:
		return Decode32(words[0], words[1], false), nil
	case S32:
		return Decode32(words[0], words[1], true), nil
	default:
		return 0, &DecodeError{Type: t, Got: len(words)}
	}
}

// Scale promotes v to float64 and multiplies it by factor.
func Scale(v int64, factor float64) float64 {
	return float64(v) * factor
}

// Round rounds v to one decimal place, half away from zero.
// Published values are always rendered at this precision.
func Round(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

// Value is Decode, Scale and Round in one step.
func Value(t DataType, words []uint16, factor float64) (float64, error) {
	raw, err := Decode(t, words)
	if err != nil {
		return 0, err
	}
	return Round(Scale(raw, factor)), nil
}
