package sampler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ja7ad/proctop/pkg/system/util"
)

// Aggregator runs refresh cycles against a Source. It is the only owner of
// the previous system snapshot and the previous uptime.
type Aggregator struct {
	mu sync.Mutex

	src     Source
	tracker *Tracker
	log     *slog.Logger
	now     func() time.Time

	// EMA smoothing for system CPU; nil when disabled.
	ema *util.EMA

	prevCPU    SystemCounterSnapshot
	prevUptime int64
	primed     bool
}

// New builds an Aggregator reading from src.
func New(src Source, cfg *Config) *Aggregator {
	c := merge(cfg)
	a := &Aggregator{
		src:     src,
		tracker: NewTracker(c.TicksPerSecond, c.ColdStart),
		log:     c.Logger,
		now:     c.Now,
	}
	if c.Alpha > 0 {
		a.ema = util.NewEMA(c.Alpha)
	}
	return a
}

// Tracked reports how many processes the tracker holds.
func (a *Aggregator) Tracked() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracker.Len()
}

// Sample runs one refresh cycle.
//
// All sources are read before any state changes, so a failed cycle leaves the
// tracker and the previous system snapshot as they were. Processes that vanish
// between enumeration and read are skipped. The first cycle has nothing to
// diff against and reports 0 system CPU; smoothing starts on the second.
func (a *Aggregator) Sample() (SystemReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	uptime, err := a.src.ReadUptime()
	if err != nil {
		return SystemReport{}, fmt.Errorf("%w: uptime: %w", ErrUnavailable, err)
	}
	pids, err := a.src.ListPIDs()
	if err != nil {
		return SystemReport{}, fmt.Errorf("%w: list pids: %w", ErrUnavailable, err)
	}

	users, err := a.src.Users()
	if err != nil {
		a.log.Warn("user table unavailable", "err", err)
		users = nil
	}

	live := make([]CounterSnapshot, 0, len(pids))
	for _, pid := range pids {
		snap, ok := a.src.ReadProcess(pid)
		if !ok {
			a.log.Debug("process vanished", "pid", pid)
			continue
		}
		snap.User = resolveUser(users, snap.UID)
		live = append(live, snap)
	}

	cpu, err := a.src.ReadSystemCPU()
	if err != nil {
		return SystemReport{}, fmt.Errorf("%w: system cpu: %w", ErrUnavailable, err)
	}
	mem, err := a.src.ReadMemory()
	if err != nil {
		return SystemReport{}, fmt.Errorf("%w: memory: %w", ErrUnavailable, err)
	}
	running, err := a.src.ReadRunningCount()
	if err != nil {
		a.log.Warn("running count unavailable", "err", err)
		running = countRunning(live)
	}

	procs := a.tracker.Refresh(live, uptime)

	var sys float64
	var window int64
	if a.primed {
		sys, window = SystemUtilization(cpu, a.prevCPU), uptime-a.prevUptime
		if a.ema != nil {
			sys = a.ema.Next(sys)
		}
	} else if a.ema != nil {
		// The priming 0 is not a measurement; the first real delta seeds the average.
		a.ema.Reset()
	}
	a.prevCPU, a.prevUptime, a.primed = cpu, uptime, true

	return SystemReport{
		Processes:         procs,
		CPUUtilization:    sys,
		MemoryUtilization: MemoryUtilization(mem),
		Memory:            mem,
		Uptime:            uptime,
		Window:            window,
		TotalProcesses:    len(procs),
		RunningProcesses:  running,
		SampledAt:         a.now(),
	}, nil
}

func resolveUser(users UserTable, uid string) string {
	if users != nil {
		if name := users.Lookup(uid); name != "" {
			return name
		}
	}
	return uid
}

func countRunning(live []CounterSnapshot) int {
	n := 0
	for _, s := range live {
		if s.State == 'R' {
			n++
		}
	}
	return n
}
