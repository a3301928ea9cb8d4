// Command tracesynth attaches a synthetic size and cost to every key of a
// trace: tracesynth [flags] <input_path> <output_path>.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tracetools/tracetools/internal/app"
	"github.com/tracetools/tracetools/internal/config"
	"github.com/tracetools/tracetools/internal/metrics"
	"github.com/tracetools/tracetools/internal/synth"
	"github.com/tracetools/tracetools/internal/tracefile"
)

func main() {
	configPath := flag.String("config", "", "path to optional config file")
	seed := flag.Int64("seed", 0, "random seed; 0 uses synth.seed from config, then the clock")
	watchInput := flag.Bool("watch", false, "re-run whenever the input file changes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: tracesynth [flags] <input_path> <output_path>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Synth.Seed = *seed
	}
	slog.SetDefault(app.NewLogger(cfg.Log, os.Stderr))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	job := app.Job{
		Tool:  "tracesynth",
		Input: input,
		Run: func(context.Context) (map[string]float64, error) {
			return run(input, output, cfg.Synth)
		},
	}
	if err := app.Execute(ctx, job, app.Options{Watch: *watchInput, Textfile: cfg.Metrics.Textfile}); err != nil {
		slog.Error("tracesynth failed", "input", input, "err", err)
		cancel()
		os.Exit(1)
	}
}

// run synthesizes input into output with a fresh assignment mapping.
func run(input, output string, cfg config.SynthConfig) (map[string]float64, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s, err := synth.New(synth.Options{
		Sizes: cfg.Sizes,
		Costs: cfg.Costs,
		Rand:  rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return nil, err
	}

	var st synth.Stats
	err = tracefile.ReadFile(input, func(r io.Reader) error {
		return tracefile.WriteFile(output, func(w io.Writer) error {
			st, err = s.Synthesize(r, w)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return map[string]float64{
		metrics.Lines: float64(st.Lines),
		metrics.Keys:  float64(st.Keys),
	}, nil
}
