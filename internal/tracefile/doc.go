// Package tracefile holds the plumbing shared by the trace transforms.
//
// Scan reads a trace one line at a time, trims surrounding whitespace, and
// hands each line to a callback along with its 1-based line number. An error
// returned by the callback stops the scan and is wrapped in a *LineError so
// callers can report where the input went wrong.
//
// WriteFile writes an output file atomically: the content goes to a temporary
// file in the destination directory and is renamed into place only when the
// writer function succeeds. A failed run never leaves partial output behind.
package tracefile
