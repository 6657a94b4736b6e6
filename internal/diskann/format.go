// Package diskann implements the on-disk LM-DiskANN graph: the fixed
// block layout, the append-only index file, greedy best-first search,
// and the search-then-prune-then-link insertion protocol. It is
// grounded on the reference DiskANN disk graph store's file-handling
// style (internal/diskann/disk_graph.go in the retrieved reference
// package) and on the teacher's binary-format header conventions
// (internal/index/hnsw/format.go), generalized from HNSW's
// variable-length section layout to the fixed-width block-per-node
// layout this design requires.
package diskann

import (
	"github.com/xDarkicex/vecindex/internal/codec"
	"github.com/xDarkicex/vecindex/internal/verr"
)

// Magic identifies a valid index file header: "DiskANN" read as a
// little-endian u64 (spec.md §3).
const Magic uint64 = 0x4e4e416b736944

// DefaultBlockSize is the default fixed block width in bytes.
const DefaultBlockSize = 4096

// blockSizeShift is the sector-unit shift used to encode the block
// size in the header: block_size_units = B >> blockSizeShift, i.e.
// the real block size in 512-byte sector units (spec.md §9, open
// question 3 — this is the intended encoding, not a fence-post bug).
const blockSizeShift = 9

// VectorTypeF32 is the only vector_type value implemented.
const VectorTypeF32 uint16 = 0

// SimilarityCosine is the only similarity value implemented.
const SimilarityCosine uint16 = 0

// HeaderSize is the fixed width of the meaningful header fields; the
// rest of block 0 up to the block size is zero padding.
const HeaderSize = 8 + 2 + 2 + 2 + 2 + 8 + 8

// Header is the index file header stored at file offset 0, padded to
// one block.
type Header struct {
	BlockSize       int // real block size in bytes (B)
	VectorType      uint16
	Dimension       uint16
	Similarity      uint16
	EntryOffset     uint64 // 0 means "empty graph"
	FirstFreeOffset uint64 // reserved, always 0
}

// EncodeHeader renders h as one block: HeaderSize meaningful bytes
// followed by zero padding to h.BlockSize.
func EncodeHeader(h *Header) []byte {
	b := make([]byte, h.BlockSize)
	codec.PutU64(b[0:], Magic)
	codec.PutU16(b[8:], uint16(h.BlockSize>>blockSizeShift))
	codec.PutU16(b[10:], h.VectorType)
	codec.PutU16(b[12:], h.Dimension)
	codec.PutU16(b[14:], h.Similarity)
	codec.PutU64(b[16:], h.EntryOffset)
	codec.PutU64(b[24:], h.FirstFreeOffset)
	return b
}

// DecodeHeader parses and validates a header block.
func DecodeHeader(b []byte) (*Header, error) {
	if len(b) < HeaderSize {
		return nil, verr.Corrupt("header block shorter than %d bytes", HeaderSize)
	}
	magic, _ := codec.GetU64(b[0:])
	if magic != Magic {
		return nil, verr.Corrupt("bad header magic %#x", magic)
	}
	units, _ := codec.GetU16(b[8:])
	vectorType, _ := codec.GetU16(b[10:])
	dimension, _ := codec.GetU16(b[12:])
	similarity, _ := codec.GetU16(b[14:])
	entryOffset, _ := codec.GetU64(b[16:])
	firstFree, _ := codec.GetU64(b[24:])

	if vectorType != VectorTypeF32 {
		return nil, verr.Corrupt("unsupported vector type %d", vectorType)
	}
	if dimension < 1 || int(dimension) > 16000 {
		return nil, verr.Corrupt("dimension %d out of range", dimension)
	}

	return &Header{
		BlockSize:       int(units) << blockSizeShift,
		VectorType:      vectorType,
		Dimension:       dimension,
		Similarity:      similarity,
		EntryOffset:     entryOffset,
		FirstFreeOffset: firstFree,
	}, nil
}

// Layout describes the fixed byte offsets within a node block for a
// given block size and dimension, per spec.md §3/§4.3.
type Layout struct {
	BlockSize int
	Dimension int
	RMax      int

	ownerVectorOffset int
	ownerIDOffset     int
	neighborCountOff  int
	neighborVecsOff   int
	neighborMetaOff   int
	neighborBlobSize  int
}

// NewLayout computes the node block layout for blockSize and
// dimension, including the derived neighbor capacity R_max.
func NewLayout(blockSize, dimension int) *Layout {
	ownerBlob := codec.VectorBlobSize(dimension)
	neighborBlob := codec.VectorBlobSize(dimension)
	rMax := (blockSize - ownerBlob - 8) / (neighborBlob + 16)
	if rMax < 0 {
		rMax = 0
	}

	l := &Layout{
		BlockSize:        blockSize,
		Dimension:        dimension,
		RMax:             rMax,
		neighborBlobSize: neighborBlob,
	}
	l.ownerVectorOffset = 0
	l.ownerIDOffset = ownerBlob
	l.neighborCountOff = l.ownerIDOffset + 8
	l.neighborVecsOff = l.neighborCountOff + 2
	l.neighborMetaOff = l.neighborVecsOff + rMax*neighborBlob
	return l
}

// neighborVectorOffset returns the byte offset of neighbor slot i's
// vector blob.
func (l *Layout) neighborVectorOffset(i int) int {
	return l.neighborVecsOff + i*l.neighborBlobSize
}

// neighborMetaOffset returns the byte offset of neighbor slot i's
// (id, offset) metadata record.
func (l *Layout) neighborMetaOffset(i int) int {
	return l.neighborMetaOff + i*16
}
