package vecvalue

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xDarkicex/vecindex/internal/codec"
)

// Serialize renders v in the wire form of §4.2: a u32 length prefix
// followed by the f32 element payload.
func Serialize(v *Vector) []byte {
	b := make([]byte, codec.VectorBlobSize(len(v.Elements)))
	_ = codec.PutVectorBlob(b, v.Elements)
	return b
}

// FormatText renders v's textual form: integer-valued components
// print as decimal integers, all others with 6-digit exponential
// notation. The result round-trips through ParseText to a numerically
// equal vector up to float-formatting precision.
func FormatText(v *Vector) string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = formatComponent(e)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func formatComponent(f float32) string {
	if !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f)) && f == float32(math.Trunc(float64(f))) {
		return strconv.FormatFloat(float64(f), 'f', 0, 64)
	}
	return fmt.Sprintf("%.6e", f)
}
