package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ja7ad/proctop/pkg/sampler"
	"github.com/ja7ad/proctop/pkg/system/util"
	"github.com/ja7ad/proctop/pkg/types"
)

// columns of the process table, shared by the dashboard and the plain renderer.
var columns = []string{"PID", "USER", "S", "CPU%", "RES", "VIRT", "AGE", "COMMAND"}

// CPUPercent turns a cpu-seconds per second ratio into a percentage.
// With perCore set the value is divided by cores so 100% means every core busy.
func CPUPercent(ratio float64, perCore bool, cores int) float64 {
	pct := util.NonNegative(ratio) * 100
	if perCore && cores > 1 {
		pct /= float64(cores)
	}
	return pct
}

// Gauge draws a fixed width bar followed by the percentage, e.g. "[|||   ]  50.0%".
func Gauge(ratio float64, width int) string {
	if width < 1 {
		width = 1
	}
	r := util.Clamp01(ratio)
	filled := int(math.Round(r * float64(width)))
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat("|", filled), strings.Repeat(" ", width-filled), r*100)
}

// truncate cuts s to at most n runes, marking the cut with "~".
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "~"
	}
	return string(r[:n-1]) + "~"
}

func processRow(p sampler.ProcessResult, perCore bool, cores int) []string {
	state := "?"
	if p.State != 0 {
		state = string(p.State)
	}
	return []string{
		strconv.Itoa(p.PID),
		truncate(p.User, 10),
		state,
		fmt.Sprintf("%.1f", CPUPercent(p.CPU, perCore, cores)),
		p.RSS.Compact(),
		p.VmSize.Compact(),
		types.Elapsed(p.Uptime).String(),
		p.Command,
	}
}

// limit returns the first n processes, or all of them when n <= 0.
func limit(procs []sampler.ProcessResult, n int) []sampler.ProcessResult {
	if n <= 0 || n >= len(procs) {
		return procs
	}
	return procs[:n]
}

func summaryLines(host HostInfo, rep sampler.SystemReport) []string {
	lines := make([]string, 0, 3)
	if host.OS != "" || host.Kernel != "" {
		lines = append(lines, fmt.Sprintf("%s  kernel %s  %s", orUnknown(host.OS), orUnknown(host.Kernel), orUnknown(host.Cgroup)))
	}
	lines = append(lines,
		fmt.Sprintf("up %s  tasks %d total, %d running", types.Elapsed(rep.Uptime), rep.TotalProcesses, rep.RunningProcesses),
		fmt.Sprintf("mem %s / %s", rep.Memory.Used().Humanized(), rep.Memory.Total.Humanized()),
	)
	return lines
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
