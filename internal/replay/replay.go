package replay

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tracetools/tracetools/internal/cache"
	"github.com/tracetools/tracetools/internal/tracefile"
)

// Result counts the requests of one Replay call.
type Result struct {
	Requests  int64
	Misses    int64
	TotalCost int64
	MissCost  int64
}

// MissRatio is the fraction of requests that missed, 0 for an empty trace.
func (r Result) MissRatio() float64 {
	if r.Requests == 0 {
		return 0
	}
	return float64(r.Misses) / float64(r.Requests)
}

// CostMissRatio is the fraction of total cost paid on misses, 0 when the
// trace carries no cost.
func (r Result) CostMissRatio() float64 {
	if r.TotalCost == 0 {
		return 0
	}
	return float64(r.MissCost) / float64(r.TotalCost)
}

// Replay reads a synthesized trace from r and requests every key from c in
// order.
func Replay(r io.Reader, c cache.Cache) (Result, error) {
	var res Result
	_, err := tracefile.Scan(r, func(line string) error {
		fields := tracefile.Fields(line, -1)
		if len(fields) < 4 {
			return tracefile.Malformed("want at least 4 fields, got %d", len(fields))
		}
		size, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
		if err != nil || size < 0 {
			return tracefile.Malformed("size %q is not a non-negative integer", fields[2])
		}
		cost, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
		if err != nil {
			return tracefile.Malformed("cost %q is not an integer", fields[3])
		}

		total, err := tracefile.AddInt64(res.TotalCost, cost)
		if err != nil {
			return err
		}
		missCost := res.MissCost
		hit := c.Get(fields[1])
		if !hit {
			if missCost, err = tracefile.AddInt64(missCost, cost); err != nil {
				return err
			}
			c.PutIfAbsent(fields[1], cost, size)
			res.Misses++
		}
		res.MissCost = missCost
		res.TotalCost = total
		res.Requests++
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("replay: %w", err)
	}
	slog.Debug("replay: trace replayed",
		"requests", res.Requests,
		"misses", res.Misses,
		"cached_keys", c.Len(),
		"load", c.Load(),
	)
	return res, nil
}
