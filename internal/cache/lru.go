package cache

import "container/list"

type lruEntry struct {
	key  string
	size int64
}

// LRU evicts the least recently used key first.
type LRU struct {
	capacity int64
	load     int64
	order    *list.List // front is least recently used
	items    map[string]*list.Element
}

// NewLRU returns an empty LRU holding at most capacity units.
func NewLRU(capacity int64) *LRU {
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (c *LRU) Get(key string) bool {
	el, ok := c.items[key]
	if ok {
		c.order.MoveToBack(el)
	}
	return ok
}

func (c *LRU) PutIfAbsent(key string, _, size int64) bool {
	if _, ok := c.items[key]; ok || size < 0 || size > c.capacity {
		return false
	}
	for c.load+size > c.capacity {
		c.evict()
	}
	c.items[key] = c.order.PushBack(&lruEntry{key: key, size: size})
	c.load += size
	return true
}

func (c *LRU) Len() int { return len(c.items) }

func (c *LRU) Load() int64 { return c.load }

func (c *LRU) evict() {
	el := c.order.Front()
	if el == nil {
		return
	}
	e := c.order.Remove(el).(*lruEntry)
	delete(c.items, e.key)
	c.load -= e.size
}
