// Package ui renders sampler reports, either as a live bubbletea dashboard or
// as plain tables for pipes and one-shot use.
package ui

import (
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ja7ad/proctop/pkg/sampler"
)

// Sampler produces one report per call. *sampler.Aggregator satisfies it.
type Sampler interface {
	Sample() (sampler.SystemReport, error)
}

// HostInfo is static host detail shown in the header.
type HostInfo struct {
	OS     string
	Kernel string
	Cgroup string
}

// Options control refresh and presentation.
type Options struct {
	Interval time.Duration
	// Top limits the table; 0 shows every process.
	Top     int
	PerCore bool
	// Cores used for per-core normalisation; 0 means runtime.NumCPU().
	Cores int
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = time.Second
	}
	if o.Cores <= 0 {
		o.Cores = runtime.NumCPU()
	}
	return o
}

type tickMsg time.Time

type reportMsg struct {
	report sampler.SystemReport
	err    error
}

// headerLines is the number of lines above the table.
const headerLines = 7

// Model is the dashboard state.
type Model struct {
	sampler Sampler
	host    HostInfo
	opts    Options

	report    sampler.SystemReport
	hasReport bool
	err       error

	offset int
	width  int
	height int

	help     help.Model
	showHelp bool
}

// NewModel returns a dashboard that samples s every opts.Interval.
func NewModel(s Sampler, host HostInfo, opts Options) Model {
	return Model{
		sampler: s,
		host:    host,
		opts:    opts.withDefaults(),
		help:    help.New(),
	}
}

// Init samples once right away and starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sample(), m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) sample() tea.Cmd {
	s := m.sampler
	return func() tea.Msg {
		rep, err := s.Sample()
		return reportMsg{report: rep, err: err}
	}
}

// Update handles refresh ticks, sampled reports, keys and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.sample(), m.tick())

	case reportMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// Samples run on separate goroutines and may land out of order.
		if m.hasReport && msg.report.SampledAt.Before(m.report.SampledAt) {
			return m, nil
		}
		m.err = nil
		m.report = msg.report
		m.hasReport = true
		m.offset = m.clampOffset(m.offset)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.offset = m.clampOffset(m.offset - 1)
		case key.Matches(msg, keys.Down):
			m.offset = m.clampOffset(m.offset + 1)
		case key.Matches(msg, keys.PageUp):
			m.offset = m.clampOffset(m.offset - m.pageSize())
		case key.Matches(msg, keys.PageDown):
			m.offset = m.clampOffset(m.offset + m.pageSize())
		case key.Matches(msg, keys.Top):
			m.offset = 0
		case key.Matches(msg, keys.PerCore):
			m.opts.PerCore = !m.opts.PerCore
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.offset = m.clampOffset(m.offset)
	}

	return m, nil
}

func (m Model) rows() []sampler.ProcessResult {
	return limit(m.report.Processes, m.opts.Top)
}

// pageSize is how many table rows fit on screen.
func (m Model) pageSize() int {
	if m.height <= 0 {
		return len(m.rows())
	}
	n := m.height - headerLines - 3
	if n < 1 {
		n = 1
	}
	return n
}

func (m Model) clampOffset(off int) int {
	maxOff := len(m.rows()) - m.pageSize()
	if off > maxOff {
		off = maxOff
	}
	if off < 0 {
		off = 0
	}
	return off
}

// View renders the header, gauges, process table and footer.
func (m Model) View() string {
	if !m.hasReport {
		if m.err != nil {
			return styleError.Render("sample failed: "+m.err.Error()) + "\n"
		}
		return "Sampling...\n"
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("proctop"))
	b.WriteString(" ")
	b.WriteString(styleMuted.Render(m.report.SampledAt.Format("15:04:05")))
	b.WriteString("\n")
	for _, line := range summaryLines(m.host, m.report) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.renderGauge("CPU", m.report.CPUUtilization))
	b.WriteString(m.renderGauge("MEM", m.report.MemoryUtilization))
	if m.err != nil {
		b.WriteString(styleError.Render("last sample failed: " + m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(m.renderTable())

	view := lipgloss.JoinVertical(lipgloss.Left, b.String(), styleFooter.Render(m.help.View(keys)))
	return view
}

func (m Model) renderGauge(label string, ratio float64) string {
	width := 30
	if m.width > 0 && m.width < 50 {
		width = 10
	}
	return styleLabel.Render(label) + " " + gaugeStyle(ratio).Render(Gauge(ratio, width)) + "\n"
}

func (m Model) renderTable() string {
	rows := m.rows()
	end := m.offset + m.pageSize()
	if end > len(rows) {
		end = len(rows)
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	tw.Write([]byte(strings.Join(columns, "\t") + "\n"))
	for _, p := range rows[m.offset:end] {
		tw.Write([]byte(strings.Join(processRow(p, m.opts.PerCore, m.opts.Cores), "\t") + "\n"))
	}
	tw.Flush()

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	for i, line := range lines {
		if m.width > 0 {
			line = truncate(line, m.width)
		}
		if i == 0 {
			line = styleTableHead.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
