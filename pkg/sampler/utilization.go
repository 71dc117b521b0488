package sampler

import (
	"math"

	"github.com/ja7ad/proctop/pkg/system/util"
)

// DefaultTicksPerSecond is USER_HZ on practically every Linux build.
const DefaultTicksPerSecond = 100

// ProcessUtilization returns the CPU ratio of a process between two snapshots.
//
// Both tick totals are converted to seconds, and the difference is divided by
// the uptime delta floored at one second. The floor keeps two calls inside the
// same second from dividing by zero and caps spikes. Equal snapshots yield 0.
// A negative difference (which needs PID reuse) yields 0.
func ProcessUtilization(cur, prev CounterSnapshot, curUptime, prevUptime int64, ticksPerSecond int) float64 {
	hz := float64(ticksOrDefault(ticksPerSecond))
	curSec := float64(cur.Ticks()) / hz
	prevSec := float64(prev.Ticks()) / hz

	timeDelta := max(curUptime-prevUptime, 1)
	return util.NonNegative((curSec - prevSec) / float64(timeDelta))
}

// SystemUtilization returns the busy share of all CPU time between two
// aggregate snapshots, in [0,1].
//
//	totalDelta = total(cur) - total(prev)
//	idleDelta  = idle(cur) - idle(prev)
//	ratio      = (totalDelta - idleDelta) / max(totalDelta, 1)
//
// A counter that went backwards contributes a zero delta, and the result is
// clamped, so resets never produce a negative ratio.
func SystemUtilization(cur, prev SystemCounterSnapshot) float64 {
	totalDelta := float64(util.DeltaU64(cur.Total(), prev.Total()))
	idleDelta := float64(util.DeltaU64(cur.IdleClass(), prev.IdleClass()))

	return util.Clamp01((totalDelta - idleDelta) / math.Max(totalDelta, 1))
}

// MemoryUtilization returns (total-free)/total, with total floored at 1.
func MemoryUtilization(mem MemorySnapshot) float64 {
	total := float64(mem.Total)
	free := float64(mem.Free)
	return util.Clamp01((total - free) / math.Max(total, 1))
}

// processAge returns uptime minus the start tick in seconds, never negative.
func processAge(s CounterSnapshot, uptime int64, ticksPerSecond int) int64 {
	return max(uptime-int64(s.StartTime)/int64(ticksOrDefault(ticksPerSecond)), 0)
}

func ticksOrDefault(ticksPerSecond int) int {
	if ticksPerSecond <= 0 {
		return DefaultTicksPerSecond
	}
	return ticksPerSecond
}
