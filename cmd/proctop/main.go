//go:build linux

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ja7ad/proctop/pkg/config"
	"github.com/ja7ad/proctop/pkg/sampler"
	"github.com/ja7ad/proctop/pkg/system/proc"
	"github.com/ja7ad/proctop/pkg/ui"
)

type flags struct {
	configPath string
	logLevel   string
	interval   time.Duration
	top        int
	ema        float64
	coldStart  string
	perCore    bool
	plain      bool
	procRoot   string
	samples    int
}

func main() {
	var f flags
	if err := newRootCmd(&f).Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd(f *flags) *cobra.Command {
	root := &cobra.Command{
		Use:   "proctop",
		Short: "Live per-process and system CPU/memory view for Linux",
		Long: `proctop samples /proc once per interval and turns the kernel's cumulative
counters into rates: CPU used by each process, system-wide CPU and memory
utilization, uptime and task counts.

On a terminal it runs an interactive dashboard. When stdout is not a terminal,
or with --plain, it prints a table per interval instead.

Examples:
  proctop
  proctop --interval 2s --top 15 --per-core
  proctop --plain --samples 3 | less
  proctop once --json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, f.samples)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", config.DefaultPath(), "path to the YAML config file")
	pf.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.DurationVarP(&f.interval, "interval", "i", time.Second, "refresh interval (e.g. 1s, 500ms)")
	pf.IntVarP(&f.top, "top", "n", 20, "number of processes to show (0 = all)")
	pf.Float64Var(&f.ema, "ema", 0, "EMA alpha for system CPU smoothing [0..1], 0 disables")
	pf.StringVar(&f.coldStart, "cold-start", "delta", "CPU baseline for newly seen processes: delta or lifetime")
	pf.BoolVar(&f.perCore, "per-core", false, "divide process CPU by the number of cores")
	pf.StringVar(&f.procRoot, "proc-root", proc.DefaultRoot, "procfs mount point")
	root.Flags().BoolVar(&f.plain, "plain", false, "print tables instead of the interactive dashboard")
	root.Flags().IntVarP(&f.samples, "samples", "s", 0, "stop after this many tables in plain mode (0 = until Ctrl-C)")

	root.AddCommand(newOnceCmd(f), newConfigCmd(f))
	return root
}

// setup loads the config file, applies explicitly set flags on top and
// installs the default logger.
func setup(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("interval") {
		cfg.Interval = f.interval.String()
	}
	if changed("top") {
		cfg.Top = f.top
	}
	if changed("ema") {
		cfg.EMA = f.ema
	}
	if changed("cold-start") {
		cfg.ColdStart = f.coldStart
	}
	if changed("per-core") {
		cfg.PerCore = f.perCore
	}
	if changed("plain") {
		cfg.Plain = f.plain
	}
	if changed("proc-root") {
		cfg.Sources.ProcRoot = f.procRoot
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))
	return cfg, nil
}

func newSource(cfg *config.Config) *proc.FS {
	return &proc.FS{
		Root:      cfg.Sources.ProcRoot,
		Passwd:    cfg.Sources.Passwd,
		OSRelease: cfg.Sources.OSRelease,
	}
}

func newAggregator(cfg *config.Config, fs *proc.FS) (*sampler.Aggregator, error) {
	sc, err := cfg.SamplerConfig(proc.ClockTicks(), slog.Default())
	if err != nil {
		return nil, err
	}
	return sampler.New(fs, sc), nil
}

func hostInfo(fs *proc.FS) ui.HostInfo {
	host := ui.HostInfo{OS: fs.OperatingSystem(), Kernel: fs.Kernel()}
	if v, _, err := fs.CgroupMode(); err != nil {
		slog.Debug("cgroup detection failed", "err", err)
	} else {
		host.Cgroup = v.String()
	}
	return host
}

func uiOptions(cfg *config.Config) ui.Options {
	return ui.Options{
		Interval: cfg.IntervalDuration(),
		Top:      cfg.Top,
		PerCore:  cfg.PerCore,
	}
}

func run(ctx context.Context, cfg *config.Config, samples int) error {
	fs := newSource(cfg)
	agg, err := newAggregator(cfg, fs)
	if err != nil {
		return err
	}
	host := hostInfo(fs)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !cfg.Plain && term.IsTerminal(int(os.Stdout.Fd())) {
		p := tea.NewProgram(ui.NewModel(agg, host, uiOptions(cfg)), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	}
	return runPlain(ctx, os.Stdout, agg, host, uiOptions(cfg), samples)
}

// runPlain primes the sampler, then prints one table per interval. The
// priming cycle is not printed since every rate in it is 0.
func runPlain(ctx context.Context, w io.Writer, s ui.Sampler, host ui.HostInfo, opts ui.Options, samples int) error {
	if _, err := s.Sample(); err != nil {
		return err
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	printed := 0
	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted")
			return nil
		case <-ticker.C:
			rep, err := s.Sample()
			if err != nil {
				slog.Warn("sample error", "err", err)
				continue
			}
			if printed > 0 {
				fmt.Fprintln(w)
			}
			if err := ui.RenderTable(w, host, rep, opts); err != nil {
				return err
			}
			printed++
			if samples > 0 && printed >= samples {
				return nil
			}
		}
	}
}

func newOnceCmd(f *flags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Sample twice, one interval apart, and print a single report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, f)
			if err != nil {
				return err
			}
			fs := newSource(cfg)
			agg, err := newAggregator(cfg, fs)
			if err != nil {
				return err
			}
			rep, err := sampleOnce(cmd.Context(), agg, cfg.IntervalDuration())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rep, cfg.Top)
			}
			return ui.RenderTable(cmd.OutOrStdout(), hostInfo(fs), rep, uiOptions(cfg))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

// sampleOnce takes a priming sample, waits for interval, and returns the second.
func sampleOnce(ctx context.Context, s ui.Sampler, interval time.Duration) (sampler.SystemReport, error) {
	if _, err := s.Sample(); err != nil {
		return sampler.SystemReport{}, err
	}
	select {
	case <-ctx.Done():
		return sampler.SystemReport{}, ctx.Err()
	case <-time.After(interval):
	}
	return s.Sample()
}

func newConfigCmd(f *flags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(f.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", f.configPath)
			}
			if err := config.SaveConfig(config.DefaultConfig(), f.configPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", f.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

type processJSON struct {
	PID     int     `json:"pid"`
	User    string  `json:"user"`
	State   string  `json:"state"`
	CPU     float64 `json:"cpu"`
	RSS     uint64  `json:"rss_bytes"`
	VmSize  uint64  `json:"vm_size_bytes"`
	Age     int64   `json:"age_sec"`
	Command string  `json:"command"`
}

type reportJSON struct {
	At               time.Time     `json:"time"`
	CPU              float64       `json:"cpu"`
	Memory           float64       `json:"memory"`
	MemTotal         uint64        `json:"mem_total_bytes"`
	MemFree          uint64        `json:"mem_free_bytes"`
	Uptime           int64         `json:"uptime_sec"`
	WindowSec        int64         `json:"window_sec"`
	TotalProcesses   int           `json:"total_processes"`
	RunningProcesses int           `json:"running_processes"`
	Processes        []processJSON `json:"processes"`
}

func writeJSON(w io.Writer, rep sampler.SystemReport, top int) error {
	out := reportJSON{
		At:               rep.SampledAt,
		CPU:              rep.CPUUtilization,
		Memory:           rep.MemoryUtilization,
		MemTotal:         uint64(rep.Memory.Total),
		MemFree:          uint64(rep.Memory.Free),
		Uptime:           rep.Uptime,
		WindowSec:        rep.Window,
		TotalProcesses:   rep.TotalProcesses,
		RunningProcesses: rep.RunningProcesses,
		Processes:        make([]processJSON, 0, len(rep.Processes)),
	}
	for i, p := range rep.Processes {
		if top > 0 && i >= top {
			break
		}
		out.Processes = append(out.Processes, processJSON{
			PID:     p.PID,
			User:    p.User,
			State:   string(p.State),
			CPU:     p.CPU,
			RSS:     uint64(p.RSS),
			VmSize:  uint64(p.VmSize),
			Age:     p.Uptime,
			Command: p.Command,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
