package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/proctop/pkg/sampler"
)

type stubSampler struct {
	report sampler.SystemReport
	err    error
	calls  int
}

func (s *stubSampler) Sample() (sampler.SystemReport, error) {
	s.calls++
	return s.report, s.err
}

// isQuitCmd executes a tea.Cmd and reports whether it produces a tea.QuitMsg.
func isQuitCmd(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := NewModel(&stubSampler{}, HostInfo{OS: "TestOS", Kernel: "6.9"}, Options{Cores: 2})
	m, _ = update(t, m, reportMsg{report: sampleReport()})
	return m
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(&stubSampler{}, HostInfo{}, Options{})

	assert.Equal(t, time.Second, m.opts.Interval)
	assert.Positive(t, m.opts.Cores)
	assert.False(t, m.hasReport)
	assert.Equal(t, "Sampling...\n", m.View())
	assert.NotNil(t, m.Init())
}

func TestModel_SampleCmd(t *testing.T) {
	s := &stubSampler{report: sampleReport()}
	m := NewModel(s, HostInfo{}, Options{})

	msg := m.sample()()
	rep, ok := msg.(reportMsg)
	require.True(t, ok)
	assert.NoError(t, rep.err)
	assert.Len(t, rep.report.Processes, 3)
	assert.Equal(t, 1, s.calls)
}

func TestModel_Tick(t *testing.T) {
	m := NewModel(&stubSampler{}, HostInfo{}, Options{})
	_, cmd := update(t, m, tickMsg(time.Now()))
	assert.NotNil(t, cmd)
}

func TestModel_Report(t *testing.T) {
	m := loaded(t)

	assert.True(t, m.hasReport)
	view := m.View()
	assert.Contains(t, view, "proctop")
	assert.Contains(t, view, "TestOS")
	assert.Contains(t, view, "CPU")
	assert.Contains(t, view, "/usr/bin/editor notes.txt")

	t.Run("error keeps last report", func(t *testing.T) {
		m2, _ := update(t, m, reportMsg{err: errors.New("boom")})
		assert.True(t, m2.hasReport)
		assert.Contains(t, m2.View(), "last sample failed: boom")
		assert.Contains(t, m2.View(), "/usr/bin/editor notes.txt")
	})

	t.Run("error before first report", func(t *testing.T) {
		m0 := NewModel(&stubSampler{}, HostInfo{}, Options{})
		m0, _ = update(t, m0, reportMsg{err: errors.New("no proc")})
		assert.Contains(t, m0.View(), "sample failed: no proc")
	})
}

func TestModel_StaleReportIgnored(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewModel(&stubSampler{}, HostInfo{}, Options{})

	newer := sampleReport()
	newer.SampledAt = now
	newer.Uptime = 200
	m, _ = update(t, m, reportMsg{report: newer})

	older := sampleReport()
	older.SampledAt = now.Add(-time.Second)
	older.Uptime = 199
	m, _ = update(t, m, reportMsg{report: older})
	assert.Equal(t, int64(200), m.report.Uptime, "older report must not replace a newer one")

	same := sampleReport()
	same.SampledAt = now
	same.Uptime = 201
	m, _ = update(t, m, reportMsg{report: same})
	assert.Equal(t, int64(201), m.report.Uptime)

	next := sampleReport()
	next.SampledAt = now.Add(time.Second)
	next.Uptime = 202
	m, _ = update(t, m, reportMsg{report: next})
	assert.Equal(t, int64(202), m.report.Uptime)
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, isQuitCmd(cmd))

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuitCmd(cmd))
}

func TestModel_PerCoreToggle(t *testing.T) {
	m := loaded(t)
	require.False(t, m.opts.PerCore)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	assert.True(t, m.opts.PerCore)
	assert.Contains(t, m.renderTable(), "25.0")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	assert.False(t, m.opts.PerCore)
}

func TestModel_Scroll(t *testing.T) {
	m := loaded(t)
	// Leaves room for a single table row.
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: headerLines + 4})
	require.Equal(t, 1, m.pageSize())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.offset)
	assert.Contains(t, m.renderTable(), "[kworker/0:1]")
	assert.NotContains(t, m.renderTable(), "notes.txt")

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 2, m.offset, "offset stops at the last row")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.offset)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, m.offset)

	t.Run("shrinking report clamps offset", func(t *testing.T) {
		m2, _ := update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m2, _ = update(t, m2, tea.KeyMsg{Type: tea.KeyDown})
		require.Equal(t, 2, m2.offset)

		rep := sampleReport()
		rep.Processes = rep.Processes[:1]
		m2, _ = update(t, m2, reportMsg{report: rep})
		assert.Equal(t, 0, m2.offset)
	})
}

func TestModel_HelpToggle(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, m.showHelp)
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "page down")
}
