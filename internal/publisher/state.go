// internal/publisher/state.go
package publisher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/tamzrod/invt-mqtt-bridge/internal/poller"
	"github.com/tamzrod/invt-mqtt-bridge/internal/register"
)

// RenderSnapshot encodes one cycle as a flat JSON object.
//
// Keys follow registry order. Values carry exactly one decimal
// (87 renders as 87.0). A failed sensor renders as null so the
// key set never changes between cycles.
func RenderSnapshot(snap poller.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	seen := make(map[string]struct{}, len(snap.Readings))

	buf.WriteByte('{')
	for i, r := range snap.Readings {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("publisher: duplicate sensor id %q in snapshot", r.ID)
		}
		seen[r.ID] = struct{}{}

		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(r.ID)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		if !r.OK() || math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			buf.WriteString("null")
			continue
		}
		buf.Write(strconv.AppendFloat(nil, register.Round(r.Value), 'f', 1, 64))
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
