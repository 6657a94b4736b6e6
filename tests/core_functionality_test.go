// Package tests holds root-level integration smoke tests exercising
// the public vecindex API end-to-end, adapted from the teacher's
// equivalent root tests/core_functionality_test.go (originally
// exercising Database/Collection/HNSW) to the Create/Insert/Search
// cursor surface of this index.
package tests

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xDarkicex/vecindex"
	"github.com/xDarkicex/vecindex/internal/vecvalue"
)

func TestCoreInsertAndSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "core.db")
	cur, err := vecindex.Create(path, 4, vecindex.WithDegree(8), vecindex.WithSearchList(20))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer cur.Close()

	ctx := context.Background()
	corpus := map[uint64][]float32{
		1: {1, 0, 0, 0},
		2: {0, 1, 0, 0},
		3: {0, 0, 1, 0},
		4: {0, 0, 0, 1},
		5: {0.9, 0.1, 0, 0},
	}
	for id, vec := range corpus {
		if err := cur.Insert(ctx, id, vecvalue.New(vec)); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}

	results, err := cur.Search(ctx, vecvalue.New([]float32{1, 0, 0, 0}), 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ID != 1 && results[0].ID != 5 {
		t.Fatalf("top result id = %d, want 1 or 5 (the vectors closest to the query)", results[0].ID)
	}
}

func TestCoreRejectsDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mismatch.db")
	cur, err := vecindex.Create(path, 3)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer cur.Close()

	err = cur.Insert(context.Background(), 1, vecvalue.New([]float32{1, 2}))
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}
