// Command tracecost prints the first-wins total cost of a trace:
// tracecost [flags] <input_path>.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tracetools/tracetools/internal/app"
	"github.com/tracetools/tracetools/internal/config"
	"github.com/tracetools/tracetools/internal/cost"
	"github.com/tracetools/tracetools/internal/metrics"
	"github.com/tracetools/tracetools/internal/tracefile"
)

func main() {
	configPath := flag.String("config", "", "path to optional config file")
	field := flag.Int("field", 0, "zero-based cost column; 0 uses cost.field from config")
	watchInput := flag.Bool("watch", false, "re-run whenever the input file changes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: tracecost [flags] <input_path>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err == nil && *field != 0 {
		cfg.Cost.Field = *field
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
		Tool:  "tracecost",
		Input: input,
		Run: func(context.Context) (map[string]float64, error) {
			return run(input, cfg.Cost.Field, os.Stdout)
		},
	}
	if err := app.Execute(ctx, job, app.Options{Watch: *watchInput, Textfile: cfg.Metrics.Textfile}); err != nil {
		slog.Error("tracecost failed", "input", input, "err", err)
		cancel()
		os.Exit(1)
	}
}

// run aggregates input and prints the total to stdout.
func run(input string, field int, stdout io.Writer) (map[string]float64, error) {
	var res cost.Result
	err := tracefile.ReadFile(input, func(r io.Reader) error {
		var err error
		res, err = cost.Aggregate(r, field)
		return err
	})
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintln(stdout, res.Total); err != nil {
		return nil, err
	}
	return map[string]float64{
		metrics.Lines:     float64(res.Lines),
		metrics.Keys:      float64(res.Keys),
		metrics.CostTotal: float64(res.Total),
	}, nil
}
