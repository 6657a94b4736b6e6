// Package codec implements the byte-exact little-endian primitives the
// on-disk graph format is built from: fixed-width integers, IEEE-754
// float32 bit-casts, and the length-prefixed vector blob framing.
package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ErrShortBuffer is returned whenever a decode would read past the end
// of the caller-supplied slice.
type ErrShortBuffer struct {
	Need, Have int
}

func (e *ErrShortBuffer) Error() string {
	return fmt.Sprintf("codec: need %d bytes, have %d", e.Need, e.Have)
}

func checkLen(b []byte, need int) error {
	if len(b) < need {
		return &ErrShortBuffer{Need: need, Have: len(b)}
	}
	return nil
}

// PutU16 writes v little-endian into b[0:2].
func PutU16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }

// GetU16 reads a little-endian uint16 from b[0:2].
func GetU16(b []byte) (uint16, error) {
	if err := checkLen(b, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// PutU32 writes v little-endian into b[0:4].
func PutU32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

// GetU32 reads a little-endian uint32 from b[0:4].
func GetU32(b []byte) (uint32, error) {
	if err := checkLen(b, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// PutU64 writes v little-endian into b[0:8].
func PutU64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

// GetU64 reads a little-endian uint64 from b[0:8].
func GetU64(b []byte) (uint64, error) {
	if err := checkLen(b, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// PutF32 writes the bit-cast of v little-endian into b[0:4].
func PutF32(b []byte, v float32) { PutU32(b, math.Float32bits(v)) }

// GetF32 reads a little-endian float32 from b[0:4].
func GetF32(b []byte) (float32, error) {
	u, err := GetU32(b)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// VectorBlobSize returns the wire size of a blob holding n f32 elements:
// 4-byte length prefix plus n*4 element bytes.
func VectorBlobSize(n int) int { return 4 + 4*n }

// PutVectorBlob writes the u32-length-prefixed f32 payload for elems
// into b, which must be at least VectorBlobSize(len(elems)) bytes.
func PutVectorBlob(b []byte, elems []float32) error {
	need := VectorBlobSize(len(elems))
	if err := checkLen(b, need); err != nil {
		return err
	}
	PutU32(b, uint32(len(elems)))
	off := 4
	for _, e := range elems {
		PutF32(b[off:], e)
		off += 4
	}
	return nil
}

// GetVectorBlob reads a u32-length-prefixed f32 payload from b,
// returning the decoded elements. It never reads past maxLen elements.
func GetVectorBlob(b []byte, maxLen int) ([]float32, error) {
	n, err := GetU32(b)
	if err != nil {
		return nil, err
	}
	if int(n) > maxLen {
		return nil, fmt.Errorf("codec: vector length %d exceeds max %d", n, maxLen)
	}
	need := VectorBlobSize(int(n))
	if err := checkLen(b, need); err != nil {
		return nil, err
	}
	elems := make([]float32, n)
	off := 4
	for i := range elems {
		elems[i], _ = GetF32(b[off:])
		off += 4
	}
	return elems, nil
}
