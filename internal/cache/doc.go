// Package cache implements the size-bounded caches a synthesized trace is
// replayed against.
//
// LRU evicts the least recently used key. CAMP (cost adaptive multi-queue
// eviction) groups keys into LRU queues by their rounded cost-to-size ratio
// and evicts the queue head with the lowest priority, where a key's priority
// is its ratio plus the priority of the last evicted key at the time it was
// last touched. Cheap, large objects leave first; an expensive key that has
// not been touched for long enough eventually ages out too.
//
// Capacity and sizes share a unit (bytes in practice). Both caches are for
// single-threaded use.
package cache
