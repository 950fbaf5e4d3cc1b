// Package tui provides an interactive host view for the watcher. It plays
// the role of the embedding dashboard page: it renders the job batch,
// re-renders whenever the bridge pushes a completion signal, and
// de-duplicates redelivered signals by timestamp.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gradeflow/jobwatch/internal/hostbridge"
	"github.com/gradeflow/jobwatch/internal/job"
	"github.com/gradeflow/jobwatch/internal/util"
)

// maxNameWidth bounds job names in the list view.
const maxNameWidth = 40

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	alertStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// readyMsg is sent once when the watcher's readiness handshake fires
type readyMsg struct{}

// signalMsg carries one completion signal from the bridge
type signalMsg struct {
	sig hostbridge.Signal
}

// Model is the bubbletea model for the host view.
type Model struct {
	batch  job.Batch
	bridge *hostbridge.Bridge

	order     []string        // stable display order of job IDs
	completed map[string]bool // jobID → completion observed
	alerts    []string        // user-facing alert lines, newest last

	// lastTimestamp de-duplicates redelivered signals, mirroring the
	// host contract: only a fresh timestamp triggers a re-render.
	lastTimestamp int64

	ready    bool
	quitting bool
}

// NewModel creates a host view over the given batch and bridge.
func NewModel(batch job.Batch, bridge *hostbridge.Bridge) Model {
	order := batch.IDs()
	sort.Strings(order)

	return Model{
		batch:     batch,
		bridge:    bridge,
		order:     order,
		completed: make(map[string]bool),
	}
}

// Init starts listening for the readiness handshake and bridge signals.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForReady(), m.waitForSignal())
}

// waitForReady blocks until the watcher reports initialized.
func (m Model) waitForReady() tea.Cmd {
	ready := m.bridge.Ready()
	return func() tea.Msg {
		<-ready
		return readyMsg{}
	}
}

// waitForSignal blocks until the bridge delivers the next completion.
func (m Model) waitForSignal() tea.Cmd {
	signals := m.bridge.Signals()
	return func() tea.Msg {
		sig, ok := <-signals
		if !ok {
			return nil
		}
		return signalMsg{sig: sig}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case readyMsg:
		m.ready = true
		return m, nil

	case signalMsg:
		// Stale redelivery carries a timestamp we have already seen.
		if msg.sig.Timestamp == m.lastTimestamp {
			return m, m.waitForSignal()
		}
		m.lastTimestamp = msg.sig.Timestamp

		m.completed[msg.sig.JobID] = true
		if d, ok := m.batch[msg.sig.JobID]; ok {
			m.alerts = append(m.alerts, fmt.Sprintf(
				"Your job %q submitted at [%s] has completed.",
				d.DisplayName(), d.DisplaySubmittedAt()))
		}
		return m, m.waitForSignal()
	}

	return m, nil
}

// View renders the job list and any completion alerts.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Grading jobs"))
	sb.WriteString("\n\n")

	if !m.ready {
		sb.WriteString(dimStyle.Render("initializing watcher..."))
		sb.WriteString("\n")
		return sb.String()
	}

	if len(m.order) == 0 {
		sb.WriteString(dimStyle.Render("no outstanding jobs"))
		sb.WriteString("\n")
	}

	for _, id := range m.order {
		d := m.batch[id]
		name := util.TruncateString(d.DisplayName(), maxNameWidth)
		if m.completed[id] {
			sb.WriteString(completedStyle.Render("● " + name))
			sb.WriteString(dimStyle.Render("  completed"))
		} else {
			sb.WriteString(pendingStyle.Render("○ " + name))
			sb.WriteString(dimStyle.Render("  polling"))
		}
		sb.WriteString("\n")
	}

	for _, alert := range m.alerts {
		sb.WriteString("\n")
		sb.WriteString(alertStyle.Render(alert))
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("press q to quit"))
	sb.WriteString("\n")
	return sb.String()
}
