// Package util holds the small numeric helpers used by the sampler: counter
// deltas, clamping and smoothing.
package util

import "math"

// EMA is an exponential moving average. The first value seeds the state.
type EMA struct {
	alpha, prev float64
	ok          bool
}

// NewEMA returns an EMA with alpha clamped to [0,1].
func NewEMA(alpha float64) *EMA { return &EMA{alpha: Clamp01(alpha)} }

func (e *EMA) Next(v float64) float64 {
	if !e.ok {
		e.prev, e.ok = v, true
		return v
	}
	e.prev = e.alpha*v + (1-e.alpha)*e.prev
	return e.prev
}

// Reset drops the smoothed state so the next value seeds it again.
func (e *EMA) Reset() { e.prev, e.ok = 0, false }

// DeltaU64 returns now-prev, or 0 when the counter went backwards.
func DeltaU64(now, prev uint64) uint64 {
	if now >= prev {
		return now - prev
	}
	// counter wrapped or reset
	return 0
}

func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	// guard against NaN
	if math.IsNaN(x) {
		return 0
	}
	return x
}

// NonNegative clamps x to [0,+Inf) and maps NaN to 0.
func NonNegative(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	return x
}
