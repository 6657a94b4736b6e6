// Package vecindex implements a disk-resident LM-DiskANN-style
// approximate nearest-neighbor vector index meant to be embedded
// inside a relational engine's per-table index cursor.
package vecindex

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xDarkicex/vecindex/internal/diskann"
	"github.com/xDarkicex/vecindex/internal/obs"
	"github.com/xDarkicex/vecindex/internal/vecvalue"
)

// Result is one ranked search hit, exposed from the internal diskann
// package unchanged (spec.md §6).
type Result struct {
	ID       uint64
	Distance float64
}

// Cursor is the host-facing handle for one open index file: create,
// open, insert, search, close (spec.md §4.7). A single index file is
// owned by at most one Cursor at a time (spec.md §5, Sharing); the
// host is responsible for serializing writers across cursors.
type Cursor struct {
	mu      sync.Mutex
	file    *diskann.File
	cfg     Config
	metrics *obs.Metrics
	health  *obs.HealthChecker
	closed  bool
	fatal   bool
}

// indexPath derives the on-disk index file path from the host's
// database file path and index name (spec.md §4.7/§6): dbPath +
// "-vectoridx-" + indexName.
func indexPath(dbPath, indexName string) string {
	return fmt.Sprintf("%s-vectoridx-%s", dbPath, indexName)
}

// Create records that an index with the given dimension exists at
// path and opens it. There is no separate on-disk effect beyond what
// Open's empty-file path already performs (spec.md §4.7: "create...no
// on-disk effect beyond being referenced by open").
func Create(path string, dim int, opts ...Option) (*Cursor, error) {
	return openCursor(path, dim, opts)
}

// Open opens an existing index file at path. The dimension recorded
// in its header is authoritative; any dimension-bearing option is
// ignored for an existing file.
func Open(path string, opts ...Option) (*Cursor, error) {
	return openCursor(path, 0, opts)
}

// OpenNamed derives path from dbPath and indexName per the filename
// convention of spec.md §4.7/§6 and opens it.
func OpenNamed(dbPath, indexName string, opts ...Option) (*Cursor, error) {
	return Open(indexPath(dbPath, indexName), opts...)
}

func openCursor(path string, dim int, opts []Option) (*Cursor, error) {
	cfg, err := applyOptions(defaultConfig(), opts)
	if err != nil {
		return nil, err
	}
	cfg.Dimension = dim

	metrics := obs.Noop()
	if cfg.MetricsEnabled {
		metrics = obs.NewMetrics()
	}
	file, err := diskann.Open(path, diskann.OpenOptions{
		Dimension: dim,
		BlockSize: cfg.BlockSize,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, fromInternal(err)
	}
	// The header's dimension is authoritative, also for Open.
	cfg.Dimension = int(file.Header().Dimension)

	c := &Cursor{
		file:    file,
		cfg:     cfg,
		metrics: metrics,
		health:  obs.NewHealthChecker(cursorHealthSource{file}),
	}
	return c, nil
}

// cursorHealthSource adapts a diskann.File to obs.Source so
// HealthChecker can observe the §5/§9 entry-point recovery concern at
// runtime.
type cursorHealthSource struct {
	file *diskann.File
}

func (s cursorHealthSource) EntryKnown() bool { return s.file.Header().EntryOffset != 0 }

func (s cursorHealthSource) NonEmpty() bool {
	size, err := s.file.Size()
	if err != nil {
		return false
	}
	return size > int64(s.file.BlockSize())
}

// Insert inserts vec under id, following the search-then-prune-then-
// link protocol of spec.md §4.6; a vec whose dimension differs from the
// index's is rejected with a DimensionMismatch error. A partially
// failed backlink (spec.md §4.6 Failure) is non-fatal and does not
// fail the call: the node itself is written, the back-edges that could
// not be written are missing, and the failure is only observable via
// the PartialBacklinks metric. Insert returns an error for a rejected
// call (bad context, closed/unusable cursor, wrong dimension) or a
// failed write of the new node or header; only an error for which
// IsFatal reports true marks the cursor unusable.
func (c *Cursor) Insert(ctx context.Context, id uint64, vec *vecvalue.Vector) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	outcome, err := diskann.Insert(c.file, id, vec.Elements, diskann.InsertConfig{
		R:     c.cfg.R,
		L:     c.cfg.L,
		Alpha: c.cfg.Alpha,
	})
	if err != nil {
		wrapped := fromInternal(err)
		if IsFatal(wrapped) {
			c.fatal = true
		}
		return wrapped
	}

	c.metrics.VectorInserts.Inc()
	if len(outcome.PartialBacklink) > 0 {
		// Non-fatal: the node itself is written; only the failed
		// back-edges are missing (spec.md §4.6 Failure). spec.md:159 requires Insert to
		// still report success; the counter is the report.
		c.metrics.PartialBacklinks.Add(float64(len(outcome.PartialBacklink)))
	}
	return nil
}

// Search returns up to k ranked hits for q (spec.md §4.5). L is taken
// from the cursor's configuration, not a per-call argument, matching
// spec.md's "searchList" parameter of the search operation.
func (c *Cursor) Search(ctx context.Context, q *vecvalue.Vector, k int) ([]Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(c.metrics.SearchLatency)
	defer timer.ObserveDuration()

	results, err := diskann.Search(c.file, q.Elements, c.cfg.L, k)
	if err != nil {
		c.metrics.SearchErrors.Inc()
		wrapped := fromInternal(err)
		if IsFatal(wrapped) {
			c.fatal = true
		}
		return nil, wrapped
	}
	c.metrics.SearchQueries.Inc()

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{ID: r.ID, Distance: r.Distance}
	}
	return out, nil
}

// Health reports whether the cursor's index file currently looks
// recoverable, surfacing the §5/§9 entry-point concern without
// requiring a re-open.
func (c *Cursor) Health(ctx context.Context) (*obs.HealthStatus, error) {
	return c.health.Check(ctx)
}

// MemoryUsage estimates the cursor's live search-context allocation,
// O(L + visited) vectors of the configured dimension, plus fixed
// per-open-file overhead (spec.md §5 Memory; SPEC_FULL.md §4.11).
func (c *Cursor) MemoryUsage() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	const fixedOverhead = 4096
	perVector := int64(c.cfg.Dimension)*4 + 32
	return int64(c.cfg.L)*perVector*2 + fixedOverhead
}

// Close closes the underlying file and releases cursor memory
// (spec.md §4.7).
func (c *Cursor) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.file.Close()
}

func (c *Cursor) guard() error {
	if c.closed {
		return ErrCorrupt("cursor is closed")
	}
	if c.fatal {
		return ErrCorrupt("cursor is unusable after a prior fatal error")
	}
	return nil
}
