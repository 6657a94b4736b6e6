package vecindex

import "fmt"

// Config holds everything Create/Open needs to size and tune a index
// file. Dimension has no default: it must be supplied at Create time
// (spec.md §9 design note 4).
type Config struct {
	Dimension      int
	BlockSize      int
	R              int
	L              int
	Alpha          float32
	MetricsEnabled bool
}

// defaultConfig returns the degree cap, search-list cap and alpha used
// when no option overrides them.
func defaultConfig() Config {
	return Config{
		BlockSize: 0, // 0 selects internal/diskann.DefaultBlockSize
		R:         64,
		L:         100,
		Alpha:     1.2,
	}
}

// Option configures a Cursor at Create or Open time, following the
// teacher's functional-options pattern (libravdb/options.go).
type Option func(*Config) error

// WithBlockSize overrides the on-disk block size in bytes. Ignored by
// Open against an existing file, whose header already fixes it.
func WithBlockSize(bytes int) Option {
	return func(c *Config) error {
		if bytes <= 0 || bytes%512 != 0 {
			return fmt.Errorf("vecindex: block size must be a positive multiple of 512, got %d", bytes)
		}
		c.BlockSize = bytes
		return nil
	}
}

// WithDegree sets R, the per-node neighbor cap.
func WithDegree(r int) Option {
	return func(c *Config) error {
		if r <= 0 {
			return fmt.Errorf("vecindex: degree cap R must be positive, got %d", r)
		}
		c.R = r
		return nil
	}
}

// WithSearchList sets L, the bounded candidate frontier size used
// during both search and insertion's initial probe.
func WithSearchList(l int) Option {
	return func(c *Config) error {
		if l <= 0 {
			return fmt.Errorf("vecindex: search list cap L must be positive, got %d", l)
		}
		c.L = l
		return nil
	}
}

// WithMetrics registers the cursor's counters and histograms against
// the default Prometheus registry instead of an isolated one,
// following the teacher's Config.MetricsEnabled flag
// (libravdb/options.go WithMetrics). Leave disabled (the default) when
// opening many cursors in one process, such as in tests, to avoid
// duplicate-registration panics.
func WithMetrics(enabled bool) Option {
	return func(c *Config) error {
		c.MetricsEnabled = enabled
		return nil
	}
}

// WithAlpha sets the robust-prune diversity coefficient. Values below
// 1.0 are rejected.
func WithAlpha(alpha float32) Option {
	return func(c *Config) error {
		if alpha < 1.0 {
			return fmt.Errorf("vecindex: alpha must be >= 1.0, got %f", alpha)
		}
		c.Alpha = alpha
		return nil
	}
}

func applyOptions(cfg Config, opts []Option) (Config, error) {
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
