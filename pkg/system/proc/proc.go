//go:build linux

package proc

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ja7ad/proctop/pkg/sampler"
	"github.com/ja7ad/proctop/pkg/system/cgroup"
	"github.com/ja7ad/proctop/pkg/types"
)

const (
	DefaultRoot      = "/proc"
	DefaultPasswd    = "/etc/passwd"
	DefaultOSRelease = "/etc/os-release"
)

// FS reads snapshots from a procfs mount. The paths are configurable so tests
// can point it at a fixture tree. FS implements sampler.Source.
type FS struct {
	Root      string
	Passwd    string
	OSRelease string
}

var _ sampler.Source = (*FS)(nil)

// New returns an FS over the host's /proc and /etc files.
func New() *FS {
	return &FS{Root: DefaultRoot, Passwd: DefaultPasswd, OSRelease: DefaultOSRelease}
}

// hostRoot reports whether f reads the host's own procfs.
func (f *FS) hostRoot() bool {
	return f.Root == "" || filepath.Clean(f.Root) == DefaultRoot
}

func (f *FS) path(elem ...string) string {
	root := f.Root
	if root == "" {
		root = DefaultRoot
	}
	return filepath.Join(append([]string{root}, elem...)...)
}

// ClockTicks returns the number of jiffies (clock ticks) per second.
// It first checks the env var CLK_TCK (useful for testing), otherwise
// falls back to 100 (common default).
//
// Note: On real systems, the authoritative way is `sysconf(_SC_CLK_TCK)`,
// but calling that requires cgo. For portability in a pure-Go library,
// this simplified approach is acceptable.
func ClockTicks() int {
	v, _ := strconv.Atoi(os.Getenv("CLK_TCK"))
	if v > 0 {
		return v
	}
	return 100
}

// ListPIDs returns the numeric entries of the proc root in ascending order.
func (f *FS) ListPIDs() ([]int, error) {
	entries, err := os.ReadDir(f.path())
	if err != nil {
		return nil, err
	}
	pids := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	slices.Sort(pids)
	return pids, nil
}

//
// Per-PID readers
//

// Stat holds the /proc/<pid>/stat fields the sampler uses.
type Stat struct {
	Comm      string
	State     byte
	UTime     uint64
	STime     uint64
	StartTime uint64
}

// ReadProcStat parses /proc/<pid>/stat.
//
// Caveats:
//   - comm (2nd field) is in parens and may contain spaces or parens. We cut
//     at the last ") " so everything after it is numeric fields.
//   - Counters that fail to parse decode as 0; a line without the ") "
//     separator or with too few fields is ErrNoStat.
func (f *FS) ReadProcStat(pid int) (Stat, error) {
	b, err := os.ReadFile(f.path(strconv.Itoa(pid), "stat"))
	if err != nil {
		return Stat{}, err
	}
	return parseStat(string(b))
}

func parseStat(line string) (Stat, error) {
	line = strings.TrimRight(line, "\n")
	open := strings.IndexByte(line, '(')
	i := strings.LastIndex(line, ") ")
	if open < 0 || i < open {
		return Stat{}, ErrNoStat
	}
	fields := strings.Fields(line[i+2:])

	// Indexes relative to fields slice:
	// state (3rd overall) => fields[0]
	// utime (14th overall) => fields[11]
	// stime (15th overall) => fields[12]
	// starttime (22nd overall) => fields[19]
	if len(fields) < 20 || fields[0] == "" {
		return Stat{}, ErrNoStat
	}
	return Stat{
		Comm:      line[open+1 : i],
		State:     fields[0][0],
		UTime:     DecodeUint(fields[11]),
		STime:     DecodeUint(fields[12]),
		StartTime: DecodeUint(fields[19]),
	}, nil
}

// Status holds the /proc/<pid>/status fields the sampler uses.
type Status struct {
	UID    string // real uid
	VmSize types.Bytes
	VmRSS  types.Bytes
}

// ReadProcStatus reads Uid, VmSize and VmRSS from /proc/<pid>/status.
// Kernel threads have no Vm* lines; those stay zero.
func (f *FS) ReadProcStatus(pid int) (Status, error) {
	file, err := os.Open(f.path(strconv.Itoa(pid), "status"))
	if err != nil {
		return Status{}, err
	}
	defer file.Close()

	var st Status
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		fs := strings.Fields(value)
		if len(fs) == 0 {
			continue
		}
		switch key {
		case "Uid":
			st.UID = fs[0]
		case "VmSize":
			st.VmSize = types.FromKB(DecodeUint(fs[0]))
		case "VmRSS":
			st.VmRSS = types.FromKB(DecodeUint(fs[0]))
		}
	}
	return st, sc.Err()
}

// ReadCmdline returns /proc/<pid>/cmdline with NUL separators turned into
// spaces. Kernel threads and zombies return "".
func (f *FS) ReadCmdline(pid int) (string, error) {
	b, err := os.ReadFile(f.path(strconv.Itoa(pid), "cmdline"))
	if err != nil {
		return "", err
	}
	b = bytes.TrimRight(b, "\x00")
	return string(bytes.ReplaceAll(b, []byte{0}, []byte{' '})), nil
}

// ReadProcess assembles a snapshot from stat, status and cmdline.
//
// Missing stat or status means the process is gone (or is hidden from us):
// the snapshot is reported absent. An unreadable cmdline is not fatal; the
// command falls back to "[comm]" like ps shows kernel threads.
func (f *FS) ReadProcess(pid int) (sampler.CounterSnapshot, bool) {
	stat, err := f.ReadProcStat(pid)
	if err != nil {
		return sampler.CounterSnapshot{}, false
	}
	status, err := f.ReadProcStatus(pid)
	if err != nil {
		return sampler.CounterSnapshot{}, false
	}
	cmd, _ := f.ReadCmdline(pid)
	if cmd == "" {
		cmd = "[" + stat.Comm + "]"
	}
	return sampler.CounterSnapshot{
		PID:       pid,
		UID:       status.UID,
		VmSize:    status.VmSize,
		RSS:       status.VmRSS,
		UTime:     stat.UTime,
		STime:     stat.STime,
		StartTime: stat.StartTime,
		State:     stat.State,
		Command:   cmd,
	}, true
}

// Users loads the passwd table once per cycle.
func (f *FS) Users() (sampler.UserTable, error) {
	path := f.Passwd
	if path == "" {
		path = DefaultPasswd
	}
	return LoadPasswd(path)
}

// CgroupMode reports the cgroup layout seen by this process.
func (f *FS) CgroupMode() (cgroup.Version, string, error) {
	return cgroup.DetectFrom(f.path("self", "mountinfo"))
}
