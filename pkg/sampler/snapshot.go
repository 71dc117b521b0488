package sampler

import (
	"time"

	"github.com/ja7ad/proctop/pkg/types"
)

// CounterSnapshot is one read of a process's counters.
//
// UTime and STime are clock ticks since process start and never decrease for
// the same process. StartTime is fixed at creation, in ticks since boot.
type CounterSnapshot struct {
	PID       int
	UID       string
	User      string
	VmSize    types.Bytes
	RSS       types.Bytes
	UTime     uint64
	STime     uint64
	StartTime uint64
	State     byte
	Command   string
}

// Ticks returns the accumulated user plus kernel ticks.
func (s CounterSnapshot) Ticks() uint64 { return s.UTime + s.STime }

// SystemCounterSnapshot holds the aggregate "cpu" line of /proc/stat, in ticks.
type SystemCounterSnapshot struct {
	User      uint64
	Nice      uint64
	System    uint64
	Idle      uint64
	IOWait    uint64
	IRQ       uint64
	SoftIRQ   uint64
	Steal     uint64
	Guest     uint64
	GuestNice uint64
}

// IdleClass is idle + iowait.
func (s SystemCounterSnapshot) IdleClass() uint64 { return s.Idle + s.IOWait }

// BusyClass is user + nice + system + irq + softirq + steal. Guest time is
// already counted in user/nice by the kernel and is left out.
func (s SystemCounterSnapshot) BusyClass() uint64 {
	return s.User + s.Nice + s.System + s.IRQ + s.SoftIRQ + s.Steal
}

func (s SystemCounterSnapshot) Total() uint64 { return s.IdleClass() + s.BusyClass() }

// MemorySnapshot is MemTotal and MemFree from /proc/meminfo.
type MemorySnapshot struct {
	Total types.Bytes
	Free  types.Bytes
}

// Used returns Total-Free, or 0 when Free exceeds Total.
func (m MemorySnapshot) Used() types.Bytes {
	if m.Free > m.Total {
		return 0
	}
	return m.Total - m.Free
}

// ProcessResult is a snapshot with its derived CPU ratio for one cycle.
type ProcessResult struct {
	CounterSnapshot

	// CPU is cpu-seconds per wall-second over the window; 1.0 is one core.
	CPU float64
	// Uptime is the process age in seconds.
	Uptime int64
}

// SystemReport is the outcome of one refresh cycle.
type SystemReport struct {
	Processes         []ProcessResult
	CPUUtilization    float64
	MemoryUtilization float64
	Memory            MemorySnapshot
	Uptime            int64
	// Window is the uptime delta since the previous cycle; 0 on the first.
	Window           int64
	TotalProcesses   int
	RunningProcesses int
	SampledAt        time.Time
}
