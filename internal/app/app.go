package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tracetools/tracetools/internal/config"
	"github.com/tracetools/tracetools/internal/metrics"
	"github.com/tracetools/tracetools/internal/watch"
)

// NewLogger builds the logger described by cfg, writing to w.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Job is one transform invocation. Run returns the report values for the
// metrics textfile, keyed by metrics value names.
type Job struct {
	Tool  string
	Input string
	Run   func(ctx context.Context) (map[string]float64, error)
}

// Options controls how Execute drives a Job.
type Options struct {
	// Watch keeps re-running the job whenever Input changes.
	Watch bool

	// Settle is the quiet period before a watched re-run. 0 uses
	// watch.DefaultSettle.
	Settle time.Duration

	// Textfile, when set, receives a Prometheus report after each success.
	Textfile string

	now func() time.Time // injectable for deterministic tests
}

// Execute runs job once. Outside watch mode the first error is returned as
// is. In watch mode failures are logged and Execute blocks until ctx is
// cancelled.
func Execute(ctx context.Context, job Job, opts Options) error {
	if opts.now == nil {
		opts.now = time.Now
	}

	err := runOnce(ctx, job, opts)
	if !opts.Watch {
		return err
	}
	if err != nil {
		slog.Error("initial run failed, waiting for input changes", "tool", job.Tool, "err", err)
	}

	settle := opts.Settle
	if settle <= 0 {
		settle = watch.DefaultSettle
	}
	return watch.Run(ctx, job.Input, settle, func(ctx context.Context) error {
		return runOnce(ctx, job, opts)
	})
}

func runOnce(ctx context.Context, job Job, opts Options) error {
	started := opts.now()
	values, err := job.Run(ctx)
	if err != nil {
		return err
	}
	finished := opts.now()

	slog.Info("run complete",
		"tool", job.Tool,
		"input", job.Input,
		"duration", finished.Sub(started),
	)

	if opts.Textfile == "" {
		return nil
	}
	rep := metrics.Report{
		Tool:     job.Tool,
		Started:  started,
		Finished: finished,
		Values:   values,
	}
	if err := metrics.WriteTextfile(opts.Textfile, rep); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	slog.Debug("metrics textfile written", "path", opts.Textfile)
	return nil
}
