// Package config provides configuration parsing for proctop.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ja7ad/proctop/pkg/sampler"
)

// Config represents the proctop configuration file.
type Config struct {
	// Interval is a duration string (e.g. "1s", "500ms") between refresh cycles.
	Interval string `yaml:"interval"`
	// Top is how many processes the table shows; 0 shows all.
	Top int `yaml:"top"`
	// EMA is the smoothing factor for system CPU in [0,1]; 0 disables it.
	EMA float64 `yaml:"ema"`
	// ColdStart is "delta" or "lifetime", the baseline for new processes.
	ColdStart string `yaml:"cold_start"`
	// PerCore divides process CPU by the number of cores when displayed.
	PerCore bool `yaml:"per_core"`
	// Plain forces line-oriented table output even on a terminal.
	Plain bool `yaml:"plain"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Sources holds the paths read by the /proc source.
	Sources SourcesConfig `yaml:"sources"`
}

// SourcesConfig holds filesystem locations of the host data.
type SourcesConfig struct {
	// ProcRoot is the procfs mount point.
	ProcRoot string `yaml:"proc_root"`
	// Passwd is the passwd file used to resolve user names.
	Passwd string `yaml:"passwd"`
	// OSRelease is the os-release file used for the header.
	OSRelease string `yaml:"os_release"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval:  "1s",
		Top:       20,
		EMA:       0,
		ColdStart: "delta",
		PerCore:   false,
		Plain:     false,
		LogLevel:  "warn",
		Sources: SourcesConfig{
			ProcRoot:  "/proc",
			Passwd:    "/etc/passwd",
			OSRelease: "/etc/os-release",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/proctop/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "proctop", "config.yaml")
}

// LoadConfig loads configuration from a YAML file, merging with defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return config, nil
}

// Validate checks the configuration for logical consistency.
func (c *Config) Validate() error {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return fmt.Errorf("interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("interval must be > 0, got %s", c.Interval)
	}
	if c.Top < 0 {
		return fmt.Errorf("top must be non-negative, got %d", c.Top)
	}
	if c.EMA < 0 || c.EMA > 1 {
		return fmt.Errorf("ema must be in [0,1], got %v", c.EMA)
	}
	if _, err := sampler.ParseColdStart(c.ColdStart); err != nil {
		return fmt.Errorf("cold_start: %w", err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Sources.ProcRoot == "" {
		return fmt.Errorf("sources.proc_root is required")
	}
	return nil
}

// IntervalDuration returns the parsed refresh interval, or one second when
// the value does not parse.
func (c *Config) IntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// SamplerConfig translates the file settings into a sampler.Config.
func (c *Config) SamplerConfig(ticksPerSecond int, logger *slog.Logger) (*sampler.Config, error) {
	cs, err := sampler.ParseColdStart(c.ColdStart)
	if err != nil {
		return nil, err
	}
	return &sampler.Config{
		TicksPerSecond: ticksPerSecond,
		ColdStart:      cs,
		Alpha:          c.EMA,
		Logger:         logger,
	}, nil
}

// Level returns the slog level for LogLevel, defaulting to warn.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("log_level must be debug, info, warn or error, got %q", s)
	}
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
