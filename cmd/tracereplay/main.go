// Command tracereplay replays a synthesized trace through a cost-aware cache
// and prints its miss ratio and cost-miss ratio:
// tracereplay [flags] <input_path>.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tracetools/tracetools/internal/app"
	"github.com/tracetools/tracetools/internal/cache"
	"github.com/tracetools/tracetools/internal/config"
	"github.com/tracetools/tracetools/internal/metrics"
	"github.com/tracetools/tracetools/internal/replay"
	"github.com/tracetools/tracetools/internal/tracefile"
)

func main() {
	configPath := flag.String("config", "", "path to optional config file")
	policy := flag.String("policy", "", "cache policy, camp or lru; empty uses replay.policy from config")
	capacity := flag.Int64("capacity", 0, "cache capacity; 0 uses replay.capacity from config")
	precision := flag.Int("precision", 0, "camp ratio precision in bits; 0 uses replay.precision from config")
	watchInput := flag.Bool("watch", false, "re-run whenever the input file changes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: tracereplay [flags] <input_path>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err == nil {
		if *policy != "" {
			cfg.Replay.Policy = *policy
		}
		if *capacity != 0 {
			cfg.Replay.Capacity = *capacity
		}
		if *precision != 0 {
			cfg.Replay.Precision = *precision
		}
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(app.NewLogger(cfg.Log, os.Stderr))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	job := app.Job{
		Tool:  "tracereplay",
		Input: input,
		Run: func(context.Context) (map[string]float64, error) {
			return run(input, cfg.Replay, os.Stdout)
		},
	}
	if err := app.Execute(ctx, job, app.Options{Watch: *watchInput, Textfile: cfg.Metrics.Textfile}); err != nil {
		slog.Error("tracereplay failed", "input", input, "err", err)
		cancel()
		os.Exit(1)
	}
}

// run replays input through a fresh cache and prints both ratios to stdout.
func run(input string, rc config.ReplayConfig, stdout io.Writer) (map[string]float64, error) {
	c, err := cache.New(rc.Policy, rc.Capacity, rc.Precision)
	if err != nil {
		return nil, err
	}
	var res replay.Result
	err = tracefile.ReadFile(input, func(r io.Reader) error {
		var err error
		res, err = replay.Replay(r, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	_, err = fmt.Fprintf(stdout, "Miss ratio: %s\nCost-Miss ratio: %s\n",
		formatRatio(res.MissRatio()), formatRatio(res.CostMissRatio()))
	if err != nil {
		return nil, err
	}
	return map[string]float64{
		metrics.Requests:      float64(res.Requests),
		metrics.Misses:        float64(res.Misses),
		metrics.MissRatio:     res.MissRatio(),
		metrics.CostMissRatio: res.CostMissRatio(),
		metrics.Keys:          float64(c.Len()),
	}, nil
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
