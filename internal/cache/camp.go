package cache

import (
	"container/heap"
	"container/list"
	"math/bits"
)

// maxRatio caps a cost-to-size ratio so the number of distinct queues stays
// bounded.
const maxRatio = 4999

type campEntry struct {
	key      string
	size     int64
	ratio    int64 // rounded cost/size, names the queue
	priority int64
	queue    *campQueue
	el       *list.Element
}

// campQueue is the LRU list of entries sharing one rounded ratio. Its heap
// position is ordered by the priority of its head.
type campQueue struct {
	ratio   int64
	entries *list.List // front is least recently used
	index   int        // position in campHeap, -1 when absent
}

func (q *campQueue) head() *campEntry { return q.entries.Front().Value.(*campEntry) }

type campHeap []*campQueue

func (h campHeap) Len() int { return len(h) }

func (h campHeap) Less(i, j int) bool {
	pi, pj := h[i].head().priority, h[j].head().priority
	if pi != pj {
		return pi < pj
	}
	return h[i].ratio < h[j].ratio
}

func (h campHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *campHeap) Push(x any) {
	q := x.(*campQueue)
	q.index = len(*h)
	*h = append(*h, q)
}

func (h *campHeap) Pop() any {
	old := *h
	q := old[len(old)-1]
	old[len(old)-1] = nil
	q.index = -1
	*h = old[:len(old)-1]
	return q
}

// CAMP is a cost-aware cache: it keeps one LRU queue per rounded
// cost-to-size ratio and evicts the head with the lowest priority.
type CAMP struct {
	capacity  int64
	precision int
	load      int64
	inflation int64 // priority of the last evicted entry
	items     map[string]*campEntry
	queues    map[int64]*campQueue
	heads     campHeap
}

// NewCAMP returns an empty CAMP cache holding at most capacity units and
// rounding ratios to precision significant bits.
func NewCAMP(capacity int64, precision int) *CAMP {
	return &CAMP{
		capacity:  capacity,
		precision: precision,
		items:     make(map[string]*campEntry),
		queues:    make(map[int64]*campQueue),
	}
}

func (c *CAMP) Get(key string) bool {
	e, ok := c.items[key]
	if !ok {
		return false
	}
	q := e.queue
	e.priority = c.inflation + e.ratio
	q.entries.MoveToBack(e.el)
	heap.Fix(&c.heads, q.index)
	return true
}

func (c *CAMP) PutIfAbsent(key string, cost, size int64) bool {
	if _, ok := c.items[key]; ok || size < 0 || size > c.capacity {
		return false
	}
	for c.load+size > c.capacity {
		c.evict()
	}

	ratio := c.ratio(cost, size)
	q, ok := c.queues[ratio]
	if !ok {
		q = &campQueue{ratio: ratio, entries: list.New(), index: -1}
		c.queues[ratio] = q
	}
	e := &campEntry{
		key:      key,
		size:     size,
		ratio:    ratio,
		priority: c.inflation + ratio,
		queue:    q,
	}
	e.el = q.entries.PushBack(e)
	if q.index < 0 {
		heap.Push(&c.heads, q)
	}
	c.items[key] = e
	c.load += size
	return true
}

func (c *CAMP) Len() int { return len(c.items) }

func (c *CAMP) Load() int64 { return c.load }

func (c *CAMP) evict() {
	if len(c.heads) == 0 {
		return
	}
	q := c.heads[0]
	e := q.entries.Remove(q.entries.Front()).(*campEntry)
	c.inflation = e.priority
	if q.entries.Len() == 0 {
		heap.Pop(&c.heads)
		delete(c.queues, q.ratio)
	} else {
		heap.Fix(&c.heads, 0)
	}
	delete(c.items, e.key)
	c.load -= e.size
}

// ratio returns cost/size, capped at maxRatio and rounded down to the
// cache's precision in significant bits.
func (c *CAMP) ratio(cost, size int64) int64 {
	r := cost
	if size > 0 {
		r = cost / size
	}
	if r > maxRatio {
		r = maxRatio
	}
	if r < 0 {
		r = 0
	}
	return roundBits(r, c.precision)
}

// roundBits clears all but the top precision significant bits of n.
func roundBits(n int64, precision int) int64 {
	extra := bits.Len64(uint64(n)) - precision
	if extra <= 0 {
		return n
	}
	return n &^ (1<<extra - 1)
}
