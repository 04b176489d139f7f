// Package solveconfig holds the YAML-tunable search parameters that
// govern the placement solver's anytime behavior, independent of any
// one task.
package solveconfig

import (
	"crypto/sha256"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config specifies every tunable search parameter. Zero values are not
// valid configuration — callers should start from Default and override.
type Config struct {
	// NonImprovementLimit stops a per-factory deposit cycle once this
	// many consecutive additions failed to improve the simulated run
	// (§4.6).
	NonImprovementLimit int `yaml:"nonImprovementLimit" json:"nonImprovementLimit"`

	// StartingSearchDepth is the connection-tree DFS depth the outer
	// loop starts each (product, factory) seed at.
	StartingSearchDepth uint8 `yaml:"startingSearchDepth" json:"startingSearchDepth"`

	// MaxSearchDepth bounds how far StartingSearchDepth may escalate
	// across outer-loop restarts (§4.6, bound by 255).
	MaxSearchDepth uint8 `yaml:"maxSearchDepth" json:"maxSearchDepth"`

	// DeadlineMarginSeconds is subtracted from the task's wall-clock
	// time budget to derive the orchestrator's hard deadline (§4.8).
	DeadlineMarginSeconds float64 `yaml:"deadlineMarginSeconds" json:"deadlineMarginSeconds"`

	// CombinerCandidateCap bounds the cross-region permutation search's
	// total evaluation budget (§4.7); the combiner derives its
	// per-region component count from this.
	CombinerCandidateCap int `yaml:"combinerCandidateCap" json:"combinerCandidateCap"`

	// ChannelBufferSize sizes the search-to-combine channel so the
	// search task never blocks sending a regional solution (§5).
	ChannelBufferSize int `yaml:"channelBufferSize" json:"channelBufferSize"`

	// DebugSVGExport, when set, makes the CLI render the final scene to
	// an SVG alongside the solution JSON.
	DebugSVGExport bool `yaml:"debugSvgExport" json:"debugSvgExport"`
}

// Default returns the parameter set used when no config file is given.
func Default() Config {
	return Config{
		NonImprovementLimit:   12,
		StartingSearchDepth:   2,
		MaxSearchDepth:        255,
		DeadlineMarginSeconds: 0.2,
		CombinerCandidateCap:  1000,
		ChannelBufferSize:     256,
		DebugSVGExport:        false,
	}
}

// LoadConfig reads and validates a YAML configuration file, starting
// from Default so any field the file omits keeps its default value.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("solveconfig: reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice,
// starting from Default so an omitted field keeps its default.
func LoadConfigFromBytes(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("solveconfig: parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("solveconfig: validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks every field is within a sane range.
func (c Config) Validate() error {
	if c.NonImprovementLimit < 1 {
		return fmt.Errorf("nonImprovementLimit must be >= 1, got %d", c.NonImprovementLimit)
	}
	if c.StartingSearchDepth < 1 {
		return fmt.Errorf("startingSearchDepth must be >= 1, got %d", c.StartingSearchDepth)
	}
	if c.MaxSearchDepth < c.StartingSearchDepth {
		return fmt.Errorf("maxSearchDepth (%d) must be >= startingSearchDepth (%d)", c.MaxSearchDepth, c.StartingSearchDepth)
	}
	if c.DeadlineMarginSeconds < 0 {
		return fmt.Errorf("deadlineMarginSeconds must be >= 0, got %f", c.DeadlineMarginSeconds)
	}
	if c.CombinerCandidateCap < 1 {
		return fmt.Errorf("combinerCandidateCap must be >= 1, got %d", c.CombinerCandidateCap)
	}
	if c.ChannelBufferSize < 1 {
		return fmt.Errorf("channelBufferSize must be >= 1, got %d", c.ChannelBufferSize)
	}
	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic fingerprint of the configuration, for
// diagnostics (e.g. tagging a debug SVG export with the settings used).
func (c Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		data = []byte(fmt.Sprintf("%+v", c))
	}
	h := sha256.Sum256(data)
	return h[:]
}
