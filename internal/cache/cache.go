package cache

import "fmt"

// Policy names accepted by New.
const (
	PolicyLRU  = "lru"
	PolicyCAMP = "camp"
)

// DefaultPrecision is the number of significant bits CAMP keeps of a ratio.
const DefaultPrecision = 5

// Cache is a key-only cache bounded by the total size of its entries.
type Cache interface {
	// Get reports whether key is cached and marks it as recently used.
	Get(key string) bool

	// PutIfAbsent admits key unless it is already cached or larger than the
	// whole capacity, evicting other keys to make room. It reports whether
	// key was admitted.
	PutIfAbsent(key string, cost, size int64) bool

	// Len is the number of cached keys.
	Len() int

	// Load is the total size of cached keys.
	Load() int64
}

// New returns the cache named by policy. precision is only used by CAMP.
func New(policy string, capacity int64, precision int) (Cache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache: capacity must be positive, got %d", capacity)
	}
	switch policy {
	case PolicyLRU:
		return NewLRU(capacity), nil
	case PolicyCAMP:
		if precision <= 0 {
			return nil, fmt.Errorf("cache: camp precision must be positive, got %d", precision)
		}
		return NewCAMP(capacity, precision), nil
	default:
		return nil, fmt.Errorf("cache: unknown policy %q", policy)
	}
}
