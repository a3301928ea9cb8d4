package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tracetools/tracetools/internal/groupmean"
	"github.com/tracetools/tracetools/internal/metrics"
)

func TestRun_WritesSortedMeans(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "latency.txt")
	out := filepath.Join(dir, "means.csv")
	if err := os.WriteFile(in, []byte("groupA\n1,5\n1,7\n2,10\ngroupB\n1,100"), 0o600); err != nil {
		t.Fatalf("seed input: %v", err)
	}

	values, err := run(in, out)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "groupA,1,6.0\ngroupA,2,10.0\ngroupB,1,100.0\n"
	if string(data) != want {
		t.Errorf("output:\n%s\nwant:\n%s", data, want)
	}
	if values[metrics.Groups] != 2 || values[metrics.Keys] != 3 {
		t.Errorf("report values = %v", values)
	}
}

func TestRun_RecordBeforeGroup(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "latency.txt")
	out := filepath.Join(dir, "means.csv")
	if err := os.WriteFile(in, []byte("1,5\ngroupA\n"), 0o600); err != nil {
		t.Fatalf("seed input: %v", err)
	}

	_, err := run(in, out)
	if !errors.Is(err, groupmean.ErrRecordBeforeGroup) {
		t.Fatalf("run() error = %v, want ErrRecordBeforeGroup", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output exists after failed run (stat err = %v)", err)
	}
}
