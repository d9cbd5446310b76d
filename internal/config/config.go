package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the knobs the toolchain leaves to the operator rather than
// hardcoding, loaded from a plain struct with `yaml:"..."` tags via
// gopkg.in/yaml.v3.
type Config struct {
	// MaxToken bounds identifier/number length (MAXTOK).
	MaxToken int `yaml:"maxToken"`
	// IntegerOverflowPolicy governs ParseNum and Plus overflow.
	IntegerOverflowPolicy OverflowPolicy `yaml:"integerOverflowPolicy"`
	// MaxOptimizerPassMultiplier bounds optimize's fixpoint loop to
	// MaxOptimizerPassMultiplier * nodeCount passes.
	MaxOptimizerPassMultiplier int `yaml:"maxOptimizerPassMultiplier"`
	// TracePath, if non-empty, is a sqlite database path where cmd/cam and
	// internal/rpcserver record run metrics.
	TracePath string `yaml:"tracePath"`
}

// Default returns the documented defaults a zero-value Config falls back to.
func Default() Config {
	return Config{
		MaxToken:                   DefaultMaxToken,
		IntegerOverflowPolicy:      OverflowError,
		MaxOptimizerPassMultiplier: DefaultMaxOptimizerPassMultiplier,
	}
}

// Load reads and validates a YAML config file, filling in defaults for any
// field the file leaves zero-valued.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.MaxToken <= 0 {
		cfg.MaxToken = DefaultMaxToken
	}
	if cfg.MaxOptimizerPassMultiplier <= 0 {
		cfg.MaxOptimizerPassMultiplier = DefaultMaxOptimizerPassMultiplier
	}
	switch cfg.IntegerOverflowPolicy {
	case OverflowError, OverflowWrap, OverflowSaturate:
	case "":
		cfg.IntegerOverflowPolicy = OverflowError
	default:
		return Config{}, fmt.Errorf("config: unknown integerOverflowPolicy %q", cfg.IntegerOverflowPolicy)
	}
	return cfg, nil
}
