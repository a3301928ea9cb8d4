package synth

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/tracetools/tracetools/internal/tracefile"
)

// Default candidate sets.
var (
	DefaultSizes = []int64{1198, 83038}
	DefaultCosts = []int64{1, 3600, 86400}
)

// Assignment is the synthetic size and cost attached to a key.
type Assignment struct {
	Size int64
	Cost int64
}

// Options configures a Synthesizer. Nil candidate slices fall back to the
// defaults; a nil Rand is seeded from the clock.
type Options struct {
	Sizes []int64
	Costs []int64
	Rand  *rand.Rand
}

// Stats summarises one Synthesize call.
type Stats struct {
	Lines int
	Keys  int
}

// Synthesizer assigns and remembers a size/cost pair per trace key.
type Synthesizer struct {
	sizes    []int64
	costs    []int64
	rng      *rand.Rand
	assigned map[string]Assignment
}

// New returns a Synthesizer with an empty assignment mapping.
func New(opts Options) (*Synthesizer, error) {
	sizes, costs := opts.Sizes, opts.Costs
	if sizes == nil {
		sizes = DefaultSizes
	}
	if costs == nil {
		costs = DefaultCosts
	}
	if len(sizes) == 0 {
		return nil, errors.New("synth: size candidates must not be empty")
	}
	if len(costs) == 0 {
		return nil, errors.New("synth: cost candidates must not be empty")
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{
		sizes:    sizes,
		costs:    costs,
		rng:      rng,
		assigned: make(map[string]Assignment),
	}, nil
}

// Assign returns the pair for key, drawing one on first sight.
func (s *Synthesizer) Assign(key string) Assignment {
	if a, ok := s.assigned[key]; ok {
		return a
	}
	a := Assignment{
		Size: s.sizes[s.rng.Intn(len(s.sizes))],
		Cost: s.costs[s.rng.Intn(len(s.costs))],
	}
	s.assigned[key] = a
	return a
}

// Keys returns the number of distinct keys assigned so far.
func (s *Synthesizer) Keys() int { return len(s.assigned) }

// Synthesize reads a trace from r and writes ",<key>,<size>,<cost>" to w for
// every input line, in input order. A line without a key field fails the run.
func (s *Synthesizer) Synthesize(r io.Reader, w io.Writer) (Stats, error) {
	var buf []byte
	n, err := tracefile.Scan(r, func(line string) error {
		fields := tracefile.Fields(line, 3)
		if len(fields) < 2 {
			return tracefile.Malformed("want at least 2 fields, got %d", len(fields))
		}
		key := fields[1]
		a := s.Assign(key)

		buf = append(buf[:0], ',')
		buf = append(buf, key...)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, a.Size, 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, a.Cost, 10)
		buf = append(buf, '\n')
		_, err := w.Write(buf)
		return err
	})
	st := Stats{Lines: n, Keys: s.Keys()}
	if err != nil {
		return st, fmt.Errorf("synth: %w", err)
	}
	slog.Debug("synth: trace synthesized", "lines", st.Lines, "keys", st.Keys)
	return st, nil
}
