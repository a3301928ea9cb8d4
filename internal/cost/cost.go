package cost

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tracetools/tracetools/internal/tracefile"
)

// DefaultField is the index of the cost column in a raw trace line.
const DefaultField = 2

// Result summarises one Aggregate call.
type Result struct {
	Total int64
	Lines int
	Keys  int
}

// Aggregator keeps the first cost recorded for each key and a running total
// of those costs.
type Aggregator struct {
	first map[string]int64
	total int64
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{first: make(map[string]int64)}
}

// Seen reports whether a cost has already been recorded for key.
func (a *Aggregator) Seen(key string) bool {
	_, ok := a.first[key]
	return ok
}

// Add records cost for key unless key was already recorded, and reports
// whether it was recorded. A cost that would overflow the total is rejected
// and leaves the Aggregator unchanged.
func (a *Aggregator) Add(key string, cost int64) (bool, error) {
	if a.Seen(key) {
		return false, nil
	}
	total, err := tracefile.AddInt64(a.total, cost)
	if err != nil {
		return false, err
	}
	a.first[key] = cost
	a.total = total
	return true, nil
}

// Total returns the sum of the recorded costs.
func (a *Aggregator) Total() int64 { return a.total }

// Keys returns the number of distinct keys recorded.
func (a *Aggregator) Keys() int { return len(a.first) }

// Aggregate reads a trace from r, taking field 1 as the key and field as the
// integer cost, and returns the first-wins total.
func Aggregate(r io.Reader, field int) (Result, error) {
	if field < 2 {
		return Result{}, fmt.Errorf("cost: cost field %d overlaps the key columns", field)
	}
	agg := NewAggregator()
	n, err := tracefile.Scan(r, func(line string) error {
		fields := tracefile.Fields(line, -1)
		if len(fields) < 2 {
			return tracefile.Malformed("want at least 2 fields, got %d", len(fields))
		}
		key := fields[1]
		// Duplicates are skipped before the cost column is looked at.
		if agg.Seen(key) {
			return nil
		}
		if len(fields) <= field {
			return tracefile.Malformed("want at least %d fields, got %d", field+1, len(fields))
		}
		c, err := strconv.ParseInt(strings.TrimSpace(fields[field]), 10, 64)
		if err != nil {
			return tracefile.Malformed("cost %q is not an integer", fields[field])
		}
		_, err = agg.Add(key, c)
		return err
	})
	res := Result{Total: agg.Total(), Lines: n, Keys: agg.Keys()}
	if err != nil {
		return res, fmt.Errorf("cost: %w", err)
	}
	slog.Debug("cost: trace aggregated", "lines", res.Lines, "keys", res.Keys, "total", res.Total)
	return res, nil
}
