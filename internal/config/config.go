// Package config provides configuration management for the senars
// kernel.
//
// Configuration can be loaded from multiple sources (in order of
// precedence):
// 1. Environment variables (highest priority)
// 2. Configuration file (JSON or YAML)
// 3. Default values (lowest priority)
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete kernel configuration.
type Config struct {
	Kernel  KernelConfig  `json:"kernel" yaml:"kernel"`
	Memory  MemoryConfig  `json:"memory" yaml:"memory"`
	Stream  StreamConfig  `json:"stream" yaml:"stream"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// KernelConfig bounds derivation behavior.
type KernelConfig struct {
	MaxDerivationDepth int `json:"max_derivation_depth" yaml:"max_derivation_depth"`
}

// MemoryConfig sizes the two-tier concept store.
type MemoryConfig struct {
	FocusCapacity     int     `json:"focus_capacity" yaml:"focus_capacity"`
	LongTermCapacity  int     `json:"long_term_capacity" yaml:"long_term_capacity"`
	PromotionPriority float64 `json:"promotion_priority" yaml:"promotion_priority"`
}

// StreamConfig tunes the continuous stream reasoner.
type StreamConfig struct {
	CPUThrottleMillis     int     `json:"cpu_throttle_millis" yaml:"cpu_throttle_millis"`
	BackpressureThreshold int     `json:"backpressure_threshold" yaml:"backpressure_threshold"`
	LongTermSampleChance  float64 `json:"long_term_sample_chance" yaml:"long_term_sample_chance"`
	OutputBufferSize      int     `json:"output_buffer_size" yaml:"output_buffer_size"`
}

// LoggingConfig controls the standard-library logger.
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
}

// Default returns the kernel's default configuration.
func Default() *Config {
	return &Config{
		Kernel: KernelConfig{MaxDerivationDepth: 8},
		Memory: MemoryConfig{
			FocusCapacity:     64,
			LongTermCapacity:  4096,
			PromotionPriority: 0.6,
		},
		Stream: StreamConfig{
			CPUThrottleMillis:     1,
			BackpressureThreshold: 256,
			LongTermSampleChance:  0.3,
			OutputBufferSize:      256,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load loads configuration from environment variables over the
// defaults.
func Load() (*Config, error) {
	cfg := Default()
	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a JSON or YAML file (chosen by
// extension), then applies environment overrides on top.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFromEnv applies SENARS_<SECTION>_<KEY> overrides.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("SENARS_KERNEL_MAX_DERIVATION_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Kernel.MaxDerivationDepth = n
		}
	}

	if v := os.Getenv("SENARS_MEMORY_FOCUS_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Memory.FocusCapacity = n
		}
	}
	if v := os.Getenv("SENARS_MEMORY_LONG_TERM_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Memory.LongTermCapacity = n
		}
	}
	if v := os.Getenv("SENARS_MEMORY_PROMOTION_PRIORITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Memory.PromotionPriority = f
		}
	}

	if v := os.Getenv("SENARS_STREAM_CPU_THROTTLE_MILLIS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Stream.CPUThrottleMillis = n
		}
	}
	if v := os.Getenv("SENARS_STREAM_BACKPRESSURE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Stream.BackpressureThreshold = n
		}
	}
	if v := os.Getenv("SENARS_STREAM_LONG_TERM_SAMPLE_CHANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Stream.LongTermSampleChance = f
		}
	}
	if v := os.Getenv("SENARS_STREAM_OUTPUT_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Stream.OutputBufferSize = n
		}
	}

	if v := os.Getenv("SENARS_LOGGING_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}

	return nil
}

// Validate checks every field is within its documented range.
func (c *Config) Validate() error {
	if c.Kernel.MaxDerivationDepth < 1 {
		return fmt.Errorf("kernel.max_derivation_depth must be >= 1")
	}

	if c.Memory.FocusCapacity < 1 {
		return fmt.Errorf("memory.focus_capacity must be >= 1")
	}
	if c.Memory.LongTermCapacity < c.Memory.FocusCapacity {
		return fmt.Errorf("memory.long_term_capacity must be >= memory.focus_capacity")
	}
	if c.Memory.PromotionPriority < 0 || c.Memory.PromotionPriority > 1 {
		return fmt.Errorf("memory.promotion_priority must be in [0,1]")
	}

	if c.Stream.CPUThrottleMillis < 0 {
		return fmt.Errorf("stream.cpu_throttle_millis cannot be negative")
	}
	if c.Stream.BackpressureThreshold < 1 {
		return fmt.Errorf("stream.backpressure_threshold must be >= 1")
	}
	if c.Stream.LongTermSampleChance < 0 || c.Stream.LongTermSampleChance > 1 {
		return fmt.Errorf("stream.long_term_sample_chance must be in [0,1]")
	}
	if c.Stream.OutputBufferSize < 1 {
		return fmt.Errorf("stream.output_buffer_size must be >= 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	return nil
}

// ToJSON serializes the configuration to JSON.
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// SaveToFile writes the configuration as JSON.
func (c *Config) SaveToFile(path string) error {
	data, err := c.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
