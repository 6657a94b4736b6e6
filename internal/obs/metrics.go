// Package obs provides the Prometheus metrics and lightweight health
// reporting wired through the index, file, search and insert layers,
// grounded on the teacher's internal/obs/metrics.go and
// internal/obs/health.go.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every counter/histogram the index emits.
type Metrics struct {
	VectorInserts    prometheus.Counter
	SearchQueries    prometheus.Counter
	SearchErrors     prometheus.Counter
	SearchLatency    prometheus.Histogram
	PartialBacklinks prometheus.Counter
	BlockReads       prometheus.Counter
	BlockWrites      prometheus.Counter
}

// NewMetrics registers and returns a fresh set of metrics against the
// default Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{
		VectorInserts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vecindex_vector_inserts_total",
			Help: "Total vector insertions.",
		}),
		SearchQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vecindex_search_queries_total",
			Help: "Total search queries.",
		}),
		SearchErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vecindex_search_errors_total",
			Help: "Total search errors.",
		}),
		SearchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "vecindex_search_latency_seconds",
			Help: "Search latency in seconds.",
		}),
		PartialBacklinks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vecindex_partial_backlinks_total",
			Help: "Total back-edges that could not be written during insertions.",
		}),
		BlockReads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vecindex_block_reads_total",
			Help: "Total block reads issued to the VFS collaborator.",
		}),
		BlockWrites: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vecindex_block_writes_total",
			Help: "Total block writes (append or overwrite) issued to the VFS collaborator.",
		}),
	}
}

// Noop returns a Metrics value backed by an isolated Prometheus
// registry, for callers (tests, or hosts that open multiple indexes
// in one process) that don't want to touch the default registry or
// risk duplicate registration panics.
func Noop() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		VectorInserts:    f.NewCounter(prometheus.CounterOpts{Name: "vecindex_vector_inserts_total"}),
		SearchQueries:    f.NewCounter(prometheus.CounterOpts{Name: "vecindex_search_queries_total"}),
		SearchErrors:     f.NewCounter(prometheus.CounterOpts{Name: "vecindex_search_errors_total"}),
		SearchLatency:    f.NewHistogram(prometheus.HistogramOpts{Name: "vecindex_search_latency_seconds"}),
		PartialBacklinks: f.NewCounter(prometheus.CounterOpts{Name: "vecindex_partial_backlinks_total"}),
		BlockReads:       f.NewCounter(prometheus.CounterOpts{Name: "vecindex_block_reads_total"}),
		BlockWrites:      f.NewCounter(prometheus.CounterOpts{Name: "vecindex_block_writes_total"}),
	}
}
