package vecvalue

import (
	"strconv"
	"strings"

	"github.com/xDarkicex/vecindex/internal/codec"
	"github.com/xDarkicex/vecindex/internal/verr"
)

// MaxTextLength is the longest textual vector literal accepted by
// ParseText, guarding against pathological input before any parsing
// is attempted.
const MaxTextLength = 1024

// ParseText parses the grammar '[' (number (',' number)*)? ']' after
// trimming surrounding whitespace, e.g. "[1, 2.5, 3]". Any other shape
// is rejected with an InvalidText error that echoes the offending
// fragment.
func ParseText(s string) (*Vector, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > MaxTextLength {
		return nil, verr.InvalidText(safeFragment(trimmed))
	}
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return nil, verr.InvalidText(safeFragment(trimmed))
	}
	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return &Vector{Type: F32, Elements: []float32{}}, nil
	}

	tokens := strings.Split(inner, ",")
	if len(tokens) > MaxElements {
		return nil, verr.InvalidText(safeFragment(trimmed))
	}
	elems := make([]float32, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, verr.InvalidText(safeFragment(tok))
		}
		elems[i] = float32(f)
	}
	return &Vector{Type: F32, Elements: elems}, nil
}

// safeFragment truncates s to a length safe to echo back to a user.
func safeFragment(s string) string {
	const maxFragment = 64
	if len(s) <= maxFragment {
		return s
	}
	return s[:maxFragment] + "..."
}

// ParseBlob decodes the wire form of §4.2: a u32 length prefix
// followed by length f32 elements, validating length against
// MaxElements and the buffer against the declared framing.
func ParseBlob(b []byte) (*Vector, error) {
	n, err := codec.GetU32(b)
	if err != nil {
		return nil, verr.InvalidBlob("blob too short for length prefix")
	}
	if int(n) > MaxElements {
		return nil, verr.InvalidBlob("blob declares length exceeding maximum")
	}
	need := codec.VectorBlobSize(int(n))
	if len(b) < need {
		return nil, verr.InvalidBlob("blob truncated")
	}
	elems, err := codec.GetVectorBlob(b, MaxElements)
	if err != nil {
		return nil, verr.InvalidBlob(err.Error())
	}
	return &Vector{Type: F32, Elements: elems}, nil
}
