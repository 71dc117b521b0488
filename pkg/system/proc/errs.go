package proc

import "errors"

var (
	// ErrNoStat indicates that /proc/<pid>/stat was empty or malformed.
	ErrNoStat = errors.New("proc: malformed or empty stat")

	// ErrNoCPU indicates that /proc/stat had no aggregate CPU line.
	ErrNoCPU = errors.New("proc: no cpu line")

	// ErrNoMemInfo indicates that /proc/meminfo had no MemTotal.
	ErrNoMemInfo = errors.New("proc: no MemTotal in meminfo")

	// ErrNoUptime indicates that neither /proc/uptime nor sysinfo(2) worked.
	ErrNoUptime = errors.New("proc: uptime unavailable")

	// ErrNoRunning indicates that /proc/stat had no procs_running line.
	ErrNoRunning = errors.New("proc: no procs_running")
)
