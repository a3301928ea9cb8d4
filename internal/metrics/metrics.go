package metrics

import (
	"fmt"
	"io"
	"slices"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/tracetools/tracetools/internal/tracefile"
)

const namespace = "tracetools_"

// Report value names. Values map keys use these without the namespace.
const (
	Lines     = "lines_total"
	Keys      = "keys"
	Groups    = "groups"
	CostTotal = "cost_total"

	Requests      = "requests_total"
	Misses        = "misses_total"
	MissRatio     = "miss_ratio"
	CostMissRatio = "cost_miss_ratio"
)

// help text per metric name, without the namespace.
var help = map[string]string{
	Lines:                            "Input lines read by the last successful run.",
	Keys:                             "Distinct keys seen by the last successful run.",
	Groups:                           "Group header lines seen by the last successful run.",
	CostTotal:                        "First-wins total cost computed by the last successful run.",
	Requests:                         "Requests replayed by the last successful run.",
	Misses:                           "Cache misses of the last successful replay.",
	MissRatio:                        "Fraction of replayed requests that missed.",
	CostMissRatio:                    "Fraction of replayed cost paid on misses.",
	"run_duration_seconds":           "Wall time of the last successful run.",
	"last_success_timestamp_seconds": "Unix time the last successful run finished.",
}

// Report is the outcome of one successful tool run.
type Report struct {
	Tool     string
	Started  time.Time
	Finished time.Time
	Values   map[string]float64
}

// Families returns the report as gauge families, sorted by name.
func (r Report) Families() []*dto.MetricFamily {
	values := make(map[string]float64, len(r.Values)+2)
	for k, v := range r.Values {
		values[k] = v
	}
	if !r.Finished.IsZero() {
		values["last_success_timestamp_seconds"] = float64(r.Finished.UnixNano()) / 1e9
		if !r.Started.IsZero() {
			values["run_duration_seconds"] = r.Finished.Sub(r.Started).Seconds()
		}
	}

	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	slices.Sort(names)

	out := make([]*dto.MetricFamily, 0, len(names))
	for _, name := range names {
		h, ok := help[name]
		if !ok {
			h = "tracetools run value " + name + "."
		}
		out = append(out, &dto.MetricFamily{
			Name: ptr(namespace + name),
			Help: ptr(h),
			Type: dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{
				Label: []*dto.LabelPair{{Name: ptr("tool"), Value: ptr(r.Tool)}},
				Gauge: &dto.Gauge{Value: ptr(values[name])},
			}},
		})
	}
	return out
}

// WriteText writes families to w in the Prometheus text format.
func WriteText(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfile atomically replaces path with the text form of r.
func WriteTextfile(path string, r Report) error {
	return tracefile.WriteFile(path, func(w io.Writer) error {
		return WriteText(w, r.Families())
	})
}

func ptr[T any](v T) *T { return &v }
