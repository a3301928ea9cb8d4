package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultCostField = 2
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultReplayPolicy    = "camp"
	DefaultReplayCapacity  = 200000000
	DefaultReplayPrecision = 5
)

var (
	defaultSizes = []int64{1198, 83038}
	defaultCosts = []int64{1, 3600, 86400}
)

// Config is the top-level configuration shared by all the tools.
type Config struct {
	Synth   SynthConfig   `yaml:"synth"`
	Cost    CostConfig    `yaml:"cost"`
	Replay  ReplayConfig  `yaml:"replay"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SynthConfig holds the trace synthesizer settings.
type SynthConfig struct {
	// Sizes are the candidate object sizes drawn per key.
	Sizes []int64 `yaml:"sizes"`

	// Costs are the candidate fetch costs drawn per key.
	Costs []int64 `yaml:"costs"`

	// Seed fixes the random generator. 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// CostConfig holds the cost aggregator settings.
type CostConfig struct {
	// Field is the zero-based column holding the cost. Raw traces carry it
	// in column 2; synthesized traces in column 3.
	Field int `yaml:"field"`
}

// ReplayConfig holds the cache used by the trace replayer.
type ReplayConfig struct {
	// Policy is "camp" or "lru".
	Policy string `yaml:"policy"`

	// Capacity bounds the total size of cached objects.
	Capacity int64 `yaml:"capacity"`

	// Precision is the number of significant bits CAMP keeps of a
	// cost-to-size ratio.
	Precision int `yaml:"precision"`
}

// LogConfig controls the slog handler built by the tools.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SlogLevel maps Level onto a slog.Level. Unknown values map to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MetricsConfig configures the run report.
type MetricsConfig struct {
	// Textfile is the path of a Prometheus text exposition written after a
	// successful run, for node_exporter's textfile collector. Empty disables it.
	Textfile string `yaml:"textfile"`
}

// Load reads and parses the YAML config file at path.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		Synth: SynthConfig{
			Sizes: slices.Clone(defaultSizes),
			Costs: slices.Clone(defaultCosts),
		},
		Cost: CostConfig{Field: DefaultCostField},
		Replay: ReplayConfig{
			Policy:    DefaultReplayPolicy,
			Capacity:  DefaultReplayCapacity,
			Precision: DefaultReplayPrecision,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate checks structural constraints. Callers that override fields from
// flags should call it again.
func (c *Config) Validate() error {
	if len(c.Synth.Sizes) == 0 {
		return fmt.Errorf("synth.sizes must not be empty")
	}
	if len(c.Synth.Costs) == 0 {
		return fmt.Errorf("synth.costs must not be empty")
	}
	for i, v := range c.Synth.Sizes {
		if v < 0 {
			return fmt.Errorf("synth.sizes[%d]: must not be negative, got %d", i, v)
		}
	}
	for i, v := range c.Synth.Costs {
		if v < 0 {
			return fmt.Errorf("synth.costs[%d]: must not be negative, got %d", i, v)
		}
	}
	if c.Cost.Field < 2 {
		return fmt.Errorf("cost.field must be at least 2, got %d", c.Cost.Field)
	}
	switch c.Replay.Policy {
	case "camp", "lru":
	default:
		return fmt.Errorf("replay.policy: unknown policy %q", c.Replay.Policy)
	}
	if c.Replay.Capacity <= 0 {
		return fmt.Errorf("replay.capacity must be positive, got %d", c.Replay.Capacity)
	}
	if c.Replay.Precision < 1 || c.Replay.Precision > 63 {
		return fmt.Errorf("replay.precision must be between 1 and 63, got %d", c.Replay.Precision)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}
