package diskann

import (
	"github.com/xDarkicex/vecindex/internal/codec"
	"github.com/xDarkicex/vecindex/internal/verr"
)

// EncodeBlock renders node as exactly layout.BlockSize bytes: owner
// vector blob, owner id, neighbor count, then RMax neighbor vector
// slots and RMax neighbor metadata records, with unused slots zeroed
// (spec.md §4.3).
func EncodeBlock(layout *Layout, node *Node) ([]byte, error) {
	if len(node.Vector) != layout.Dimension {
		return nil, verr.DimensionMismatch(len(node.Vector), layout.Dimension)
	}
	if len(node.Neighbors) > layout.RMax {
		return nil, verr.Corrupt("neighbor count %d exceeds RMax %d", len(node.Neighbors), layout.RMax)
	}

	b := make([]byte, layout.BlockSize)
	if err := codec.PutVectorBlob(b[layout.ownerVectorOffset:], node.Vector); err != nil {
		return nil, err
	}
	codec.PutU64(b[layout.ownerIDOffset:], node.ID)
	codec.PutU16(b[layout.neighborCountOff:], uint16(len(node.Neighbors)))

	for i, nb := range node.Neighbors {
		if len(nb.Vector) != layout.Dimension {
			return nil, verr.DimensionMismatch(len(nb.Vector), layout.Dimension)
		}
		if err := codec.PutVectorBlob(b[layout.neighborVectorOffset(i):], nb.Vector); err != nil {
			return nil, err
		}
		metaOff := layout.neighborMetaOffset(i)
		codec.PutU64(b[metaOff:], nb.ID)
		codec.PutU64(b[metaOff+8:], uint64(nb.Offset))
	}

	return b, nil
}

// DecodeBlock parses and validates a node block against layout,
// fileSize and blockSize, per spec.md §4.3: neighbor count within
// RMax, every neighbor offset a block-aligned address inside the
// file, and every neighbor id nonzero.
func DecodeBlock(layout *Layout, b []byte, fileSize int64) (*Node, error) {
	if len(b) < layout.BlockSize {
		return nil, verr.Corrupt("block shorter than block size")
	}

	vec, err := codec.GetVectorBlob(b[layout.ownerVectorOffset:], layout.Dimension)
	if err != nil {
		return nil, verr.Corrupt("owner vector: %v", err)
	}
	if len(vec) != layout.Dimension {
		return nil, verr.Corrupt("owner vector dimension %d != %d", len(vec), layout.Dimension)
	}

	ownerID, err := codec.GetU64(b[layout.ownerIDOffset:])
	if err != nil {
		return nil, verr.Corrupt("owner id: %v", err)
	}

	n, err := codec.GetU16(b[layout.neighborCountOff:])
	if err != nil {
		return nil, verr.Corrupt("neighbor count: %v", err)
	}
	if int(n) > layout.RMax {
		return nil, verr.Corrupt("neighbor count %d exceeds RMax %d", n, layout.RMax)
	}

	node := &Node{ID: ownerID, Vector: vec, Neighbors: make([]Neighbor, n)}
	blockSize := int64(layout.BlockSize)
	seen := make(map[uint64]bool, n)
	for i := 0; i < int(n); i++ {
		nv, err := codec.GetVectorBlob(b[layout.neighborVectorOffset(i):], layout.Dimension)
		if err != nil {
			return nil, verr.Corrupt("neighbor %d vector: %v", i, err)
		}
		metaOff := layout.neighborMetaOffset(i)
		id, err := codec.GetU64(b[metaOff:])
		if err != nil {
			return nil, verr.Corrupt("neighbor %d id: %v", i, err)
		}
		off, err := codec.GetU64(b[metaOff+8:])
		if err != nil {
			return nil, verr.Corrupt("neighbor %d offset: %v", i, err)
		}

		if id == 0 {
			return nil, verr.Corrupt("neighbor %d has zero id", i)
		}
		if id == ownerID {
			return nil, verr.Corrupt("neighbor %d is a self-loop", i)
		}
		if seen[id] {
			return nil, verr.Corrupt("neighbor %d duplicates id %d", i, id)
		}
		seen[id] = true

		offset := int64(off)
		if offset < blockSize || offset >= fileSize || offset%blockSize != 0 {
			return nil, verr.Corrupt("neighbor %d offset %d out of range", i, offset)
		}

		node.Neighbors[i] = Neighbor{ID: id, Offset: offset, Vector: nv}
	}

	return node, nil
}
