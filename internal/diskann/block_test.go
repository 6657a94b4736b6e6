package diskann

import "testing"

func TestEncodeDecodeBlockRoundTrip(t *testing.T) {
	layout := NewLayout(DefaultBlockSize, 3)
	node := &Node{
		ID:     7,
		Vector: []float32{1, 2, 3},
		Neighbors: []Neighbor{
			{ID: 9, Offset: int64(DefaultBlockSize), Vector: []float32{4, 5, 6}},
			{ID: 11, Offset: int64(2 * DefaultBlockSize), Vector: []float32{7, 8, 9}},
		},
	}

	b, err := EncodeBlock(layout, node)
	if err != nil {
		t.Fatalf("EncodeBlock: %v", err)
	}
	if len(b) != layout.BlockSize {
		t.Fatalf("encoded block length %d, want %d", len(b), layout.BlockSize)
	}

	got, err := DecodeBlock(layout, b, int64(3*DefaultBlockSize))
	if err != nil {
		t.Fatalf("DecodeBlock: %v", err)
	}
	if got.ID != node.ID {
		t.Fatalf("ID = %d, want %d", got.ID, node.ID)
	}
	if len(got.Neighbors) != len(node.Neighbors) {
		t.Fatalf("neighbor count = %d, want %d", len(got.Neighbors), len(node.Neighbors))
	}
	for i, nb := range node.Neighbors {
		if got.Neighbors[i].ID != nb.ID || got.Neighbors[i].Offset != nb.Offset {
			t.Fatalf("neighbor %d = %+v, want %+v", i, got.Neighbors[i], nb)
		}
	}
}

func TestEncodeBlockRejectsTooManyNeighbors(t *testing.T) {
	layout := NewLayout(DefaultBlockSize, 3)
	neighbors := make([]Neighbor, layout.RMax+1)
	for i := range neighbors {
		neighbors[i] = Neighbor{ID: uint64(i + 1), Offset: int64((i + 1)) * int64(DefaultBlockSize), Vector: []float32{0, 0, 0}}
	}
	node := &Node{ID: 1, Vector: []float32{1, 1, 1}, Neighbors: neighbors}
	if _, err := EncodeBlock(layout, node); err == nil {
		t.Fatal("expected error for neighbor count exceeding RMax")
	}
}

func TestDecodeBlockRejectsSelfLoop(t *testing.T) {
	layout := NewLayout(DefaultBlockSize, 3)
	node := &Node{
		ID:        1,
		Vector:    []float32{1, 1, 1},
		Neighbors: []Neighbor{{ID: 1, Offset: int64(DefaultBlockSize), Vector: []float32{1, 1, 1}}},
	}
	b, err := EncodeBlock(layout, node)
	if err != nil {
		t.Fatalf("EncodeBlock: %v", err)
	}
	if _, err := DecodeBlock(layout, b, int64(2*DefaultBlockSize)); err == nil {
		t.Fatal("expected error for self-loop neighbor")
	}
}

func TestDecodeBlockRejectsOutOfRangeOffset(t *testing.T) {
	layout := NewLayout(DefaultBlockSize, 3)
	node := &Node{
		ID:        1,
		Vector:    []float32{1, 1, 1},
		Neighbors: []Neighbor{{ID: 2, Offset: int64(5 * DefaultBlockSize), Vector: []float32{1, 1, 1}}},
	}
	b, err := EncodeBlock(layout, node)
	if err != nil {
		t.Fatalf("EncodeBlock: %v", err)
	}
	if _, err := DecodeBlock(layout, b, int64(2*DefaultBlockSize)); err == nil {
		t.Fatal("expected error for out-of-range neighbor offset")
	}
}

func TestDecodeBlockRejectsDuplicateNeighborID(t *testing.T) {
	layout := NewLayout(DefaultBlockSize, 3)
	node := &Node{
		ID:     1,
		Vector: []float32{1, 1, 1},
		Neighbors: []Neighbor{
			{ID: 2, Offset: int64(DefaultBlockSize), Vector: []float32{1, 1, 1}},
			{ID: 2, Offset: int64(2 * DefaultBlockSize), Vector: []float32{2, 2, 2}},
		},
	}
	b, err := EncodeBlock(layout, node)
	if err != nil {
		t.Fatalf("EncodeBlock: %v", err)
	}
	if _, err := DecodeBlock(layout, b, int64(3*DefaultBlockSize)); err == nil {
		t.Fatal("expected error for duplicate neighbor id")
	}
}
