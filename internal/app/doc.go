// Package app holds the command-line plumbing shared by the tracetools
// binaries: building the slog logger from config, running a transform once,
// writing its Prometheus textfile report, and following the input in -watch
// mode.
package app
