package sampler

// Source reads raw snapshots from the host. Implementations decode the
// underlying text; the sampler only sees typed values.
type Source interface {
	// ListPIDs returns the processes that exist right now.
	ListPIDs() ([]int, error)
	// ReadProcess returns false when the process exited before the read
	// completed or its files could not be read.
	ReadProcess(pid int) (CounterSnapshot, bool)
	ReadSystemCPU() (SystemCounterSnapshot, error)
	ReadMemory() (MemorySnapshot, error)
	// ReadUptime returns whole seconds since boot.
	ReadUptime() (int64, error)
	// ReadRunningCount returns the number of runnable processes.
	ReadRunningCount() (int, error)
	// Users returns a uid to name table, built once per cycle.
	Users() (UserTable, error)
}

// UserTable resolves numeric user ids to names. Unknown ids yield "".
type UserTable interface {
	Lookup(uid string) string
}
