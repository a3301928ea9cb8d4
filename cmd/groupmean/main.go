// Command groupmean writes the mean of the last field per (group, sub-key):
// groupmean [flags] <input_path> <output_path>.
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
	"github.com/tracetools/tracetools/internal/groupmean"
	"github.com/tracetools/tracetools/internal/metrics"
	"github.com/tracetools/tracetools/internal/tracefile"
)

func main() {
	configPath := flag.String("config", "", "path to optional config file")
	watchInput := flag.Bool("watch", false, "re-run whenever the input file changes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: groupmean [flags] <input_path> <output_path>\n")
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
	slog.SetDefault(app.NewLogger(cfg.Log, os.Stderr))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	job := app.Job{
		Tool:  "groupmean",
		Input: input,
		Run: func(context.Context) (map[string]float64, error) {
			return run(input, output)
		},
	}
	if err := app.Execute(ctx, job, app.Options{Watch: *watchInput, Textfile: cfg.Metrics.Textfile}); err != nil {
		slog.Error("groupmean failed", "input", input, "err", err)
		cancel()
		os.Exit(1)
	}
}

// run computes the means of input and writes them to output.
// The whole input is read before output is opened.
func run(input, output string) (map[string]float64, error) {
	var res groupmean.Result
	err := tracefile.ReadFile(input, func(r io.Reader) error {
		var err error
		res, err = groupmean.Compute(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = tracefile.WriteFile(output, func(w io.Writer) error {
		return groupmean.Write(w, res.Means)
	})
	if err != nil {
		return nil, err
	}
	return map[string]float64{
		metrics.Lines:  float64(res.Lines),
		metrics.Groups: float64(res.Groups),
		metrics.Keys:   float64(len(res.Means)),
	}, nil
}
