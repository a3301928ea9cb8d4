// Package metrics renders a tool's run report as a Prometheus text
// exposition, suitable for node_exporter's textfile collector.
//
// A Report carries the counters a tool gathered during one run. Families()
// turns it into gauge MetricFamily values labelled with the tool name, and
// WriteTextfile writes them atomically so the collector never reads a half
// written file.
package metrics
