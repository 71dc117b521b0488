package sampler

import (
	"log/slog"
	"time"
)

// Config tunes an Aggregator. Zero values fall back to defaults.
//   - TicksPerSecond: clock ticks per second (USER_HZ); <= 0 means 100.
//   - ColdStart: baseline policy for newly seen processes.
//   - Alpha: EMA factor applied to system CPU in [0..1]; 0 disables.
//   - Logger: nil means slog.Default().
//   - Now: clock for SystemReport.SampledAt; nil means time.Now.
type Config struct {
	TicksPerSecond int
	ColdStart      ColdStart
	Alpha          float64
	Logger         *slog.Logger
	Now            func() time.Time
}

func _defaultConfig() *Config {
	return &Config{
		TicksPerSecond: DefaultTicksPerSecond,
		ColdStart:      ColdStartDelta,
		Alpha:          0,
		Logger:         slog.Default(),
		Now:            time.Now,
	}
}

// merge fills unset fields of cfg from the defaults.
func merge(cfg *Config) *Config {
	base := _defaultConfig()
	if cfg == nil {
		return base
	}

	merged := *base
	if cfg.TicksPerSecond > 0 {
		merged.TicksPerSecond = cfg.TicksPerSecond
	}
	merged.ColdStart = cfg.ColdStart
	if cfg.Alpha > 0 && cfg.Alpha <= 1 {
		merged.Alpha = cfg.Alpha
	}
	if cfg.Logger != nil {
		merged.Logger = cfg.Logger
	}
	if cfg.Now != nil {
		merged.Now = cfg.Now
	}
	return &merged
}
