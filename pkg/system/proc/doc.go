// Package proc reads process and system counters from a Linux procfs mount
// and hands them to pkg/sampler as typed snapshots. It does no arithmetic on
// the counters itself; deltas and ratios live in the sampler.
//
// Overview
//
//   - FS implements sampler.Source:
//     ListPIDs() ([]int, error)
//     ReadProcess(pid int) (sampler.CounterSnapshot, bool)
//     ReadSystemCPU() (sampler.SystemCounterSnapshot, error)
//     ReadMemory() (sampler.MemorySnapshot, error)
//     ReadUptime() (int64, error)
//     ReadRunningCount() (int, error)
//     Users() (sampler.UserTable, error)
//
//     Root, Passwd and OSRelease default to /proc, /etc/passwd and
//     /etc/os-release. Tests point them at a fixture tree.
//
//   - Host strings: Kernel() from /proc/version, OperatingSystem() from
//     PRETTY_NAME in os-release, CgroupMode() from /proc/self/mountinfo.
//
// Files read per process
//
//	/proc/<pid>/stat     state, utime (14), stime (15), starttime (22)
//	/proc/<pid>/status   Uid (real), VmSize, VmRSS in kB
//	/proc/<pid>/cmdline  NUL separated argv; empty for kernel threads
//
// Files read per cycle
//
//	/proc/stat     aggregate "cpu" line (ten categories), procs_running
//	/proc/meminfo  MemTotal, MemFree
//	/proc/uptime   first field, truncated to whole seconds
//	/etc/passwd    uid -> name table
//
// Error handling
//
//   - A process that disappears between ListPIDs and ReadProcess is reported
//     absent (ok=false). Permission errors on stat or status are treated the
//     same way.
//   - A counter that does not parse decodes as 0 through DecodeUint or
//     DecodeSeconds; the rest of the snapshot is kept.
//   - System files that are missing or lack their key line return an error
//     (ErrNoCPU, ErrNoMemInfo, ErrNoRunning). Uptime falls back to
//     sysinfo(2) before giving up with ErrNoUptime.
//
// # Clock ticks
//
// utime, stime and starttime are in USER_HZ ticks. ClockTicks returns 100
// unless the CLK_TCK environment variable overrides it; sysconf would need cgo.
//
// Performance notes
//
//   - Each cycle costs three small file reads per live process, plus a handful
//     of system files. Reads are blocking and carry no timeout; a hung procfs
//     read stalls the cycle.
//
// Package import path: github.com/ja7ad/proctop/pkg/system/proc
package proc
