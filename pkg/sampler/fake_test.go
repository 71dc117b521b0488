package sampler

import (
	"slices"
	"sync"
)

type fakeUsers map[string]string

func (u fakeUsers) Lookup(uid string) string { return u[uid] }

// fakeSource serves a scripted host state. Tests mutate it between cycles.
type fakeSource struct {
	mu sync.Mutex

	uptime  int64
	procs   map[int]CounterSnapshot
	vanish  map[int]bool
	cpu     SystemCounterSnapshot
	mem     MemorySnapshot
	running int
	users   fakeUsers

	uptimeErr  error
	pidsErr    error
	cpuErr     error
	memErr     error
	runningErr error
	usersErr   error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		procs:  make(map[int]CounterSnapshot),
		vanish: make(map[int]bool),
		users:  fakeUsers{"0": "root"},
	}
}

func (f *fakeSource) put(s CounterSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.procs[s.PID] = s
}

func (f *fakeSource) ListPIDs() ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pidsErr != nil {
		return nil, f.pidsErr
	}
	pids := make([]int, 0, len(f.procs)+len(f.vanish))
	for pid := range f.procs {
		pids = append(pids, pid)
	}
	for pid := range f.vanish {
		pids = append(pids, pid)
	}
	slices.Sort(pids)
	return pids, nil
}

func (f *fakeSource) ReadProcess(pid int) (CounterSnapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.vanish[pid] {
		return CounterSnapshot{}, false
	}
	s, ok := f.procs[pid]
	return s, ok
}

func (f *fakeSource) ReadSystemCPU() (SystemCounterSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cpu, f.cpuErr
}

func (f *fakeSource) ReadMemory() (MemorySnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mem, f.memErr
}

func (f *fakeSource) ReadUptime() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uptime, f.uptimeErr
}

func (f *fakeSource) ReadRunningCount() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running, f.runningErr
}

func (f *fakeSource) Users() (UserTable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return f.users, nil
}
