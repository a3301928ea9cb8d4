package groupmean

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/tracetools/tracetools/internal/tracefile"
)

// ErrRecordBeforeGroup is returned for a record that appears before any
// group header line.
var ErrRecordBeforeGroup = errors.New("record before group header")

// Key identifies one bucket: a group name and an integer sub-key.
type Key struct {
	Group  string
	SubKey int64
}

// Compare orders keys by group name, then sub-key.
func (k Key) Compare(o Key) int {
	if c := strings.Compare(k.Group, o.Group); c != 0 {
		return c
	}
	return cmp.Compare(k.SubKey, o.SubKey)
}

// Mean is the finalized statistic for one Key.
type Mean struct {
	Key
	Count int64
	Mean  float64
}

type stat struct {
	total int64
	count int64
}

// Accumulator collects running totals per Key across fed lines.
type Accumulator struct {
	group    string
	hasGroup bool
	groups   int
	stats    map[Key]*stat
}

// NewAccumulator returns an Accumulator with no current group.
func NewAccumulator() *Accumulator {
	return &Accumulator{stats: make(map[Key]*stat)}
}

// Feed consumes one trimmed input line. A blank line is a single empty
// field, so it starts the group named "".
func (a *Accumulator) Feed(line string) error {
	fields := tracefile.Fields(line, -1)
	if len(fields) == 1 {
		a.group = fields[0]
		a.hasGroup = true
		a.groups++
		return nil
	}
	if !a.hasGroup {
		return ErrRecordBeforeGroup
	}

	sub, err := parseInt(fields[0], "sub-key")
	if err != nil {
		return err
	}
	v, err := parseInt(fields[len(fields)-1], "value")
	if err != nil {
		return err
	}

	k := Key{Group: a.group, SubKey: sub}
	st, ok := a.stats[k]
	if !ok {
		st = &stat{}
		a.stats[k] = st
	}
	total, err := tracefile.AddInt64(st.total, v)
	if err != nil {
		return err
	}
	st.total = total
	st.count++
	return nil
}

// Groups returns the number of group header lines seen.
func (a *Accumulator) Groups() int { return a.groups }

// Results returns one Mean per Key, sorted by Key.
func (a *Accumulator) Results() []Mean {
	keys := maps.Keys(a.stats)
	slices.SortFunc(keys, Key.Compare)

	out := make([]Mean, 0, len(keys))
	for _, k := range keys {
		st := a.stats[k]
		out = append(out, Mean{
			Key:   k,
			Count: st.count,
			Mean:  float64(st.total) / float64(st.count),
		})
	}
	return out
}

// Result summarises one Compute call.
type Result struct {
	Means  []Mean
	Lines  int
	Groups int
}

// Compute reads the whole of r and returns the sorted means.
func Compute(r io.Reader) (Result, error) {
	acc := NewAccumulator()
	n, err := tracefile.Scan(r, acc.Feed)
	if err != nil {
		return Result{}, fmt.Errorf("groupmean: %w", err)
	}
	res := Result{Means: acc.Results(), Lines: n, Groups: acc.Groups()}
	slog.Debug("groupmean: input aggregated", "lines", res.Lines, "groups", res.Groups, "keys", len(res.Means))
	return res, nil
}

// Write renders means as "<group>,<subkey>,<mean>" lines.
func Write(w io.Writer, means []Mean) error {
	var buf []byte
	for _, m := range means {
		buf = append(buf[:0], m.Group...)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, m.SubKey, 10)
		buf = append(buf, ',')
		buf = append(buf, FormatMean(m.Mean)...)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("groupmean: write: %w", err)
		}
	}
	return nil
}

// FormatMean renders v with at most 12 significant digits, switching to
// exponent notation once the exponent reaches 12 or drops below -4. Results
// without a fraction or exponent get a ".0" suffix: 6.0, 0.333333333333,
// 1e+12.
func FormatMean(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', 12, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func parseInt(s, what string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, tracefile.Malformed("%s %q is not an integer", what, s)
	}
	return v, nil
}
