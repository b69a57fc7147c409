// Package ui is an optional interactive make-mode progress display: a
// bubbletea program driven by a channel of orchestrator events, one
// list row per module plus an aggregate progress bar.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fregec/internal/module"
	"fregec/internal/orchestrator"
)

type row struct {
	id     module.ID
	status orchestrator.Status
}

type model struct {
	title   string
	events  <-chan orchestrator.Event
	spinner spinner.Model
	prog    progress.Model
	rows    []row
	index   map[module.ID]int
	width   int
	done    bool
}

type eventMsg orchestrator.Event
type doneMsg struct{}

// New returns a Bubble Tea model that renders make-mode progress as
// Events arrive on events. The caller is responsible for closing
// events once the build finishes; New itself never closes it.
func New(title string, events <-chan orchestrator.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &model{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[module.ID]int),
		width:   80,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.apply(orchestrator.Event(msg))
		return m, tea.Batch(m.progressCmd(), m.listen())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		updated, cmd := m.prog.Update(msg)
		m.prog = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *model) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	sorted := append([]row(nil), m.rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].id < sorted[j].id })

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	for _, r := range sorted {
		b.WriteString(fmt.Sprintf("  %s %s\n", styleStatus(r.status), r.id))
	}
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *model) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *model) apply(ev orchestrator.Event) {
	idx, ok := m.index[ev.Module]
	if !ok {
		idx = len(m.rows)
		m.index[ev.Module] = idx
		m.rows = append(m.rows, row{id: ev.Module})
	}
	m.rows[idx].status = ev.Status
}

func (m *model) progressCmd() tea.Cmd {
	if len(m.rows) == 0 {
		return nil
	}
	finished := 0
	for _, r := range m.rows {
		if r.status == orchestrator.StatusDone || r.status == orchestrator.StatusError {
			finished++
		}
	}
	return m.prog.SetPercent(float64(finished) / float64(len(m.rows)))
}

func statusLabel(s orchestrator.Status) string {
	switch s {
	case orchestrator.StatusQueued:
		return "queued"
	case orchestrator.StatusWorking:
		return "working"
	case orchestrator.StatusDone:
		return "done"
	case orchestrator.StatusError:
		return "error"
	default:
		return "?"
	}
}

func styleStatus(s orchestrator.Status) string {
	label := fmt.Sprintf("%8s", statusLabel(s))
	var color lipgloss.Color
	switch s {
	case orchestrator.StatusDone:
		color = lipgloss.Color("2")
	case orchestrator.StatusError:
		color = lipgloss.Color("1")
	case orchestrator.StatusWorking:
		color = lipgloss.Color("3")
	default:
		color = lipgloss.Color("8")
	}
	return lipgloss.NewStyle().Foreground(color).Render(label)
}
