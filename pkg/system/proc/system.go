//go:build linux

package proc

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/ja7ad/proctop/pkg/sampler"
	"github.com/ja7ad/proctop/pkg/types"
)

//
// System-level readers
//

// ReadSystemCPU parses the aggregate "cpu" line of /proc/stat. Kernels older
// than 2.6.33 print fewer than ten columns; the missing ones stay zero.
func (f *FS) ReadSystemCPU() (sampler.SystemCounterSnapshot, error) {
	file, err := os.Open(f.path("stat"))
	if err != nil {
		return sampler.SystemCounterSnapshot{}, err
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	for sc.Scan() {
		fs := strings.Fields(sc.Text())
		if len(fs) == 0 || fs[0] != "cpu" {
			continue
		}
		if len(fs) < 5 {
			return sampler.SystemCounterSnapshot{}, ErrNoCPU
		}
		var vals [10]uint64
		for i, s := range fs[1:] {
			if i == len(vals) {
				break
			}
			vals[i] = DecodeUint(s)
		}
		return sampler.SystemCounterSnapshot{
			User:      vals[0],
			Nice:      vals[1],
			System:    vals[2],
			Idle:      vals[3],
			IOWait:    vals[4],
			IRQ:       vals[5],
			SoftIRQ:   vals[6],
			Steal:     vals[7],
			Guest:     vals[8],
			GuestNice: vals[9],
		}, nil
	}
	if err := sc.Err(); err != nil {
		return sampler.SystemCounterSnapshot{}, err
	}
	return sampler.SystemCounterSnapshot{}, ErrNoCPU
}

// ReadRunningCount returns procs_running from /proc/stat.
func (f *FS) ReadRunningCount() (int, error) {
	file, err := os.Open(f.path("stat"))
	if err != nil {
		return 0, err
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	for sc.Scan() {
		fs := strings.Fields(sc.Text())
		if len(fs) >= 2 && fs[0] == "procs_running" {
			return int(DecodeUint(fs[1])), nil
		}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return 0, ErrNoRunning
}

// ReadMemory returns MemTotal and MemFree from /proc/meminfo.
func (f *FS) ReadMemory() (sampler.MemorySnapshot, error) {
	file, err := os.Open(f.path("meminfo"))
	if err != nil {
		return sampler.MemorySnapshot{}, err
	}
	defer file.Close()

	var (
		mem      sampler.MemorySnapshot
		hasTotal bool
	)
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		fs := strings.Fields(sc.Text())
		if len(fs) < 2 {
			continue
		}
		switch fs[0] {
		case "MemTotal:":
			mem.Total = types.FromKB(DecodeUint(fs[1]))
			hasTotal = true
		case "MemFree:":
			mem.Free = types.FromKB(DecodeUint(fs[1]))
		}
	}
	if err := sc.Err(); err != nil {
		return sampler.MemorySnapshot{}, err
	}
	if !hasTotal {
		return sampler.MemorySnapshot{}, ErrNoMemInfo
	}
	return mem, nil
}

// ReadUptime returns whole seconds since boot from /proc/uptime. When the
// host's own /proc/uptime cannot be read it falls back to sysinfo(2). Any other
// root reports ErrNoUptime instead, since sysinfo describes the host.
func (f *FS) ReadUptime() (int64, error) {
	b, err := os.ReadFile(f.path("uptime"))
	if err == nil {
		if fs := strings.Fields(string(b)); len(fs) > 0 {
			return DecodeSeconds(fs[0]), nil
		}
		err = fmt.Errorf("empty %s", f.path("uptime"))
	}
	if !f.hostRoot() {
		return 0, fmt.Errorf("%w: %w", ErrNoUptime, err)
	}

	var info unix.Sysinfo_t
	if serr := unix.Sysinfo(&info); serr != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoUptime, serr)
	}
	return int64(info.Uptime), nil
}

// Kernel returns the release from /proc/version ("Linux version <release> ...").
func (f *FS) Kernel() string {
	b, err := os.ReadFile(f.path("version"))
	if err != nil {
		return ""
	}
	fs := strings.Fields(string(b))
	if len(fs) < 3 {
		return ""
	}
	return fs[2]
}

// OperatingSystem returns PRETTY_NAME from os-release, unquoted.
func (f *FS) OperatingSystem() string {
	path := f.OSRelease
	if path == "" {
		path = DefaultOSRelease
	}
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if ok && key == "PRETTY_NAME" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}
