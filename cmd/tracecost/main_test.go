package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/tracetools/tracetools/internal/cost"
	"github.com/tracetools/tracetools/internal/metrics"
)

// writeInput stores content in a temp trace file and returns its path.
func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("seed input: %v", err)
	}
	return path
}

func TestRun_PrintsTotal(t *testing.T) {
	in := writeInput(t, "a,k1,10\nb,k1,20\nc,k2,5")
	var stdout bytes.Buffer
	values, err := run(in, cost.DefaultField, &stdout)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if stdout.String() != "15\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "15\n")
	}
	if values[metrics.CostTotal] != 15 || values[metrics.Keys] != 2 || values[metrics.Lines] != 3 {
		t.Errorf("report values = %v", values)
	}
}

func TestRun_FailurePrintsNothing(t *testing.T) {
	in := writeInput(t, "a,k1,10\nb,k2,ten\n")
	var stdout bytes.Buffer
	if _, err := run(in, cost.DefaultField, &stdout); err == nil {
		t.Fatal("run() error = nil, want parse error")
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing on failure", stdout.String())
	}
}
