package cache

import "time"

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL    time.Duration
	sweepInterval time.Duration
	maxEntries    int
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		defaultTTL:    time.Hour,
		sweepInterval: time.Minute,
		maxEntries:    0, // unlimited
	}
}

// WithDefaultTTL sets the expiration applied when Set is called with a
// zero TTL. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithSweepInterval sets how often the background sweeper removes
// expired entries. Zero disables the sweeper; expired entries then
// fall out only when touched. Default: 1 minute.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.sweepInterval = d
	}
}

// WithMaxEntries caps the entry count; the least recently used entry
// is evicted to admit a new one. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}
