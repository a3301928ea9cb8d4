// Package cost totals the per-key cost of a trace under a first-wins policy:
// only the first cost seen for a key counts, later lines with the same key
// are ignored rather than summed or overwritten.
package cost
