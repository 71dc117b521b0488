package sampler

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ColdStart selects the baseline used the first time a process is seen.
type ColdStart int

const (
	// ColdStartDelta uses the snapshot itself as its own baseline, so a newly
	// seen process reads 0 until the next cycle.
	ColdStartDelta ColdStart = iota
	// ColdStartLifetime uses zero ticks at the process start time, so a newly
	// seen process reads its average over its whole life.
	ColdStartLifetime
)

func (c ColdStart) String() string {
	switch c {
	case ColdStartLifetime:
		return "lifetime"
	default:
		return "delta"
	}
}

// ParseColdStart maps "delta" or "lifetime" to a ColdStart.
func ParseColdStart(s string) (ColdStart, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "delta":
		return ColdStartDelta, nil
	case "lifetime":
		return ColdStartLifetime, nil
	default:
		return ColdStartDelta, fmt.Errorf("%w: %q", ErrUnknownColdStart, s)
	}
}

type trackedProcess struct {
	current  CounterSnapshot
	previous CounterSnapshot
	uptime   int64
	cpu      float64
}

// Tracker owns the pid -> previous snapshot map. It is not safe for
// concurrent use; the Aggregator serializes access.
type Tracker struct {
	ticksPerSecond int
	coldStart      ColdStart
	procs          map[int]*trackedProcess
}

func NewTracker(ticksPerSecond int, coldStart ColdStart) *Tracker {
	return &Tracker{
		ticksPerSecond: ticksOrDefault(ticksPerSecond),
		coldStart:      coldStart,
		procs:          make(map[int]*trackedProcess),
	}
}

// Len reports how many processes are tracked.
func (t *Tracker) Len() int { return len(t.procs) }

// Refresh computes a CPU ratio for every live snapshot and returns the results
// ordered by CPU, highest first. Equal ratios keep their input order.
//
// The internal map is rebuilt from live on every call: a pid that is missing
// from live is forgotten, and if it shows up again later it is a new process.
// Duplicate pids in live are ignored after the first.
func (t *Tracker) Refresh(live []CounterSnapshot, uptime int64) []ProcessResult {
	next := make(map[int]*trackedProcess, len(live))
	out := make([]ProcessResult, 0, len(live))

	for _, snap := range live {
		if _, dup := next[snap.PID]; dup {
			continue
		}
		prev, prevUptime := t.baseline(snap, uptime)
		cpu := ProcessUtilization(snap, prev, uptime, prevUptime, t.ticksPerSecond)

		next[snap.PID] = &trackedProcess{
			current:  snap,
			previous: prev,
			uptime:   uptime,
			cpu:      cpu,
		}
		out = append(out, ProcessResult{
			CounterSnapshot: snap,
			CPU:             cpu,
			Uptime:          processAge(snap, uptime, t.ticksPerSecond),
		})
	}
	t.procs = next

	slices.SortStableFunc(out, func(a, b ProcessResult) int {
		return cmp.Compare(b.CPU, a.CPU)
	})
	return out
}

// baseline returns the snapshot and uptime to diff against.
func (t *Tracker) baseline(snap CounterSnapshot, uptime int64) (CounterSnapshot, int64) {
	if tp, ok := t.procs[snap.PID]; ok && sameProcess(tp.current, snap) {
		return tp.current, tp.uptime
	}

	if t.coldStart == ColdStartLifetime {
		prev := snap
		prev.UTime, prev.STime = 0, 0
		return prev, int64(snap.StartTime) / int64(t.ticksPerSecond)
	}
	return snap, uptime
}

// sameProcess reports whether cur can follow prev for one pid. A different
// start tick or a tick counter going backwards means the pid was reused.
func sameProcess(prev, cur CounterSnapshot) bool {
	return prev.StartTime == cur.StartTime &&
		cur.UTime >= prev.UTime &&
		cur.STime >= prev.STime
}
