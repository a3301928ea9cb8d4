// Package config loads the optional tracetools configuration file.
//
// Top-level types:
//   - Config{Synth, Cost, Replay, Log, Metrics}: full config tree parsed from YAML
//   - SynthConfig: sizes, costs, seed for the trace synthesizer
//   - CostConfig: field, the cost column read by the cost aggregator
//   - ReplayConfig: policy (camp|lru), capacity, precision for tracereplay
//   - LogConfig: level (debug|info|warn|error), format (json|text)
//   - MetricsConfig: textfile, where a Prometheus run report is written
//
// Load(path) reads the YAML file over Default() (sizes 1198/83038, costs
// 1/3600/86400, cost field 2, a camp replay cache of 200000000 units with
// 5-bit precision, info/json logging), then validates candidate sets, the
// cost column, the replay cache and the logging enums. An empty path yields the
// defaults.
package config
