package metrics

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

var (
	started  = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	finished = started.Add(1500 * time.Millisecond)
)

func sampleReport() Report {
	return Report{
		Tool:     "tracecost",
		Started:  started,
		Finished: finished,
		Values: map[string]float64{
			Lines:     3,
			Keys:      2,
			CostTotal: 15,
		},
	}
}

func TestFamilies_SortedGauges(t *testing.T) {
	fams := sampleReport().Families()
	if len(fams) != 5 {
		t.Fatalf("families = %d, want 5", len(fams))
	}
	for i := 1; i < len(fams); i++ {
		if fams[i-1].GetName() >= fams[i].GetName() {
			t.Errorf("families not sorted: %q before %q", fams[i-1].GetName(), fams[i].GetName())
		}
	}
	for _, mf := range fams {
		if !strings.HasPrefix(mf.GetName(), "tracetools_") {
			t.Errorf("family %q missing namespace", mf.GetName())
		}
		if mf.GetHelp() == "" {
			t.Errorf("family %q has no help", mf.GetName())
		}
		lbl := mf.GetMetric()[0].GetLabel()
		if len(lbl) != 1 || lbl[0].GetName() != "tool" || lbl[0].GetValue() != "tracecost" {
			t.Errorf("family %q labels = %v", mf.GetName(), lbl)
		}
	}
}

func TestFamilies_NoTimestampsWhenUnfinished(t *testing.T) {
	fams := Report{Tool: "groupmean", Values: map[string]float64{Groups: 2}}.Families()
	if len(fams) != 1 || fams[0].GetName() != "tracetools_groups" {
		t.Errorf("families = %v, want only tracetools_groups", fams)
	}
}

func TestWriteText_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleReport().Families()); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if !strings.Contains(buf.String(), `tracetools_cost_total{tool="tracecost"} 15`) {
		t.Errorf("exposition missing cost sample:\n%s", buf.String())
	}

	mfs := parseText(t, &buf)
	checks := map[string]float64{
		"tracetools_lines_total":          3,
		"tracetools_keys":                 2,
		"tracetools_cost_total":           15,
		"tracetools_run_duration_seconds": 1.5,
	}
	for name, want := range checks {
		if got := gaugeValue(mfs[name]); got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	if got := gaugeValue(mfs["tracetools_last_success_timestamp_seconds"]); got != float64(finished.Unix())+0.5 {
		t.Errorf("last success = %v, want %v", got, float64(finished.Unix())+0.5)
	}
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracetools.prom")
	if err := WriteTextfile(path, sampleReport()); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open textfile: %v", err)
	}
	defer f.Close()
	mfs := parseText(t, f)
	if gaugeValue(mfs["tracetools_keys"]) != 2 {
		t.Errorf("tracetools_keys = %v, want 2", gaugeValue(mfs["tracetools_keys"]))
	}
}

// parseText decodes a text exposition, failing the test on error.
func parseText(t *testing.T, r io.Reader) map[string]*dto.MetricFamily {
	t.Helper()
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil {
		t.Fatalf("parse exposition: %v", err)
	}
	return mfs
}

// gaugeValue returns the first gauge sample of mf, or 0 if mf is nil.
func gaugeValue(mf *dto.MetricFamily) float64 {
	if mf == nil || len(mf.GetMetric()) == 0 {
		return 0
	}
	return mf.GetMetric()[0].GetGauge().GetValue()
}
