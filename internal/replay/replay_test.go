package replay

import (
	"errors"
	"strings"
	"testing"

	"github.com/tracetools/tracetools/internal/cache"
	"github.com/tracetools/tracetools/internal/tracefile"
)

func TestReplay_CountsHitsAndMisses(t *testing.T) {
	in := ",a,1,10\n,b,1,30\n,a,1,10\n,a,1,10\n"
	res, err := Replay(strings.NewReader(in), cache.NewLRU(10))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	want := Result{Requests: 4, Misses: 2, TotalCost: 60, MissCost: 40}
	if res != want {
		t.Errorf("Result = %+v, want %+v", res, want)
	}
	if got := res.MissRatio(); got != 0.5 {
		t.Errorf("MissRatio() = %v, want 0.5", got)
	}
	if got, want := res.CostMissRatio(), 40.0/60.0; got != want {
		t.Errorf("CostMissRatio() = %v, want %v", got, want)
	}
}

func TestReplay_EvictionCausesMiss(t *testing.T) {
	// Capacity for one object: every change of key misses.
	in := ",a,5,1\n,b,5,1\n,a,5,1\n"
	res, err := Replay(strings.NewReader(in), cache.NewLRU(5))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if res.Misses != 3 || res.Requests != 3 {
		t.Errorf("Result = %+v, want 3 misses out of 3", res)
	}
}

func TestReplay_CAMPKeepsExpensiveKey(t *testing.T) {
	// exp costs far more per unit than the cheap keys streaming past it.
	in := ",exp,1,86400\n,c1,1,1\n,c2,1,1\n,exp,1,86400\n,c3,1,1\n,exp,1,86400\n"
	c, err := cache.New(cache.PolicyCAMP, 2, cache.DefaultPrecision)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}
	res, err := Replay(strings.NewReader(in), c)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if res.MissCost != 86400+3 {
		t.Errorf("MissCost = %d, want only the first exp miss plus the cheap keys", res.MissCost)
	}
}

func TestReplay_OversizeObjectAlwaysMisses(t *testing.T) {
	in := ",big,11,1\n,big,11,1\n"
	c := cache.NewLRU(10)
	res, err := Replay(strings.NewReader(in), c)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if res.Misses != 2 || c.Len() != 0 {
		t.Errorf("Misses = %d Len = %d, want 2 and 0", res.Misses, c.Len())
	}
}

func TestReplay_Empty(t *testing.T) {
	res, err := Replay(strings.NewReader(""), cache.NewLRU(1))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if res.MissRatio() != 0 || res.CostMissRatio() != 0 {
		t.Errorf("ratios of empty trace = %v, %v, want 0", res.MissRatio(), res.CostMissRatio())
	}
}

func TestReplay_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
		want error
	}{
		{"too few fields", ",a,1,1\n,b,1\n", 2, tracefile.ErrMalformed},
		{"size not integer", ",a,big,1\n", 1, tracefile.ErrMalformed},
		{"negative size", ",a,-1,1\n", 1, tracefile.ErrMalformed},
		{"cost not integer", ",a,1,x\n", 1, tracefile.ErrMalformed},
		{"cost overflow", ",a,1,9223372036854775807\n,b,1,1\n", 2, tracefile.ErrOverflow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Replay(strings.NewReader(tc.in), cache.NewLRU(10))
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			var le *tracefile.LineError
			if !errors.As(err, &le) || le.Line != tc.line {
				t.Errorf("error = %v, want LineError on line %d", err, tc.line)
			}
		})
	}
}
