package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/timers/internal/tracker"
)

// Model owns Bubble Tea state for the watch view.
type Model struct {
	ctx      context.Context
	tracker  *tracker.Tracker
	interval time.Duration
	keys     keyMap
	styles   Styles

	current   *tracker.Task
	today     time.Duration
	updatedAt time.Time

	loading    bool
	statusLine string
	errorLine  string
}

type statusLoadedMsg struct {
	task  *tracker.Task
	today time.Duration
	at    time.Time
	err   error
}

type stopResultMsg struct {
	task tracker.Task
	err  error
}

type tickMsg time.Time

// NewModel seeds the watch view. interval controls how often the current task
// is reloaded from disk.
func NewModel(ctx context.Context, tr *tracker.Tracker, interval time.Duration, styles Styles) Model {
	if interval <= 0 {
		interval = time.Second
	}
	return Model{
		ctx:        ctx,
		tracker:    tr,
		interval:   interval,
		keys:       defaultKeyMap(),
		styles:     styles,
		loading:    true,
		statusLine: "Loading current task...",
	}
}

// Init loads the current task and starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStatusCmd(), m.tickCmd())
}

// Update wires state transitions from keys, ticks and async results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		return m, tea.Batch(m.loadStatusCmd(), m.tickCmd())
	case statusLoadedMsg:
		return m.handleStatusLoaded(msg)
	case stopResultMsg:
		return m.handleStopResult(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		m.statusLine = "Refreshing..."
		m.errorLine = ""
		return m, m.loadStatusCmd()
	case key.Matches(msg, m.keys.Stop):
		if m.current == nil {
			m.errorLine = "Cannot stop because you're not logging on any task."
			return m, nil
		}
		m.statusLine = fmt.Sprintf("Stopping @%d...", m.current.ID)
		m.errorLine = ""
		return m, m.stopCmd()
	}
	return m, nil
}

func (m Model) handleStatusLoaded(msg statusLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load status: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}
	m.current = msg.task
	m.today = msg.today
	m.updatedAt = msg.at
	m.errorLine = ""
	if m.statusLine == "Loading current task..." || m.statusLine == "Refreshing..." {
		m.statusLine = ""
	}
	return m, nil
}

func (m Model) handleStopResult(msg stopResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, tracker.ErrNotLogging) {
			m.errorLine = "Cannot stop because you're not logging on any task."
		} else {
			m.errorLine = fmt.Sprintf("Stop failed: %v", msg.err)
		}
		m.statusLine = ""
		return m, m.loadStatusCmd()
	}
	m.current = nil
	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Stopped @%d %s after %s.", msg.task.ID, msg.task.Name, tracker.FormatDuration(msg.task.Duration(m.tracker.Now())))
	m.loading = true
	return m, m.loadStatusCmd()
}

func (m Model) loadStatusCmd() tea.Cmd {
	tr := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		now := tr.Now()
		task, err := tr.CurrentLogTask(ctx)
		if err != nil {
			return statusLoadedMsg{at: now, err: err}
		}
		start, end := dayBounds(now.Local())
		today, err := tr.TotalDuration(ctx, start, end)
		if err != nil {
			return statusLoadedMsg{at: now, err: err}
		}
		return statusLoadedMsg{task: task, today: today, at: now}
	}
}

func (m Model) stopCmd() tea.Cmd {
	tr := m.tracker
	ctx := m.ctx
	return func() tea.Msg {
		task, err := tr.StopCurrentTaskAt(ctx, tr.Now())
		return stopResultMsg{task: task, err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	header := "timers watch"
	b.WriteString(m.styles.Bold.Render(header))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(header)))
	b.WriteString("\n\n")

	switch {
	case m.loading && m.updatedAt.IsZero():
		b.WriteString("Loading...\n")
	case m.current == nil:
		b.WriteString("You are not logging on any task.\n")
	default:
		task := m.current
		b.WriteString(m.styles.ActiveID.Render(fmt.Sprintf("@%d:", task.ID)))
		b.WriteByte(' ')
		b.WriteString(m.styles.ActiveName.Render(task.Name))
		b.WriteByte('\n')
		fmt.Fprintf(&b, "status: %s\n", task.Status())
		if open, ok := task.OpenLog(); ok {
			fmt.Fprintf(&b, "elapsed: %s\n", tracker.FormatDuration(open.Duration(m.updatedAt)))
		}
		fmt.Fprintf(&b, "time: %s\n", tracker.FormatDuration(task.Duration(m.updatedAt)))
	}
	if !m.updatedAt.IsZero() {
		fmt.Fprintf(&b, "today: %s\n", tracker.FormatDuration(m.today))
	}

	if m.errorLine != "" {
		b.WriteString("\n! ")
		b.WriteString(m.errorLine)
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	help := make([]string, 0, len(m.keys.bindings()))
	for _, binding := range m.keys.bindings() {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(m.styles.Muted.Render(strings.Join(help, "  ")))
	b.WriteByte('\n')

	return b.String()
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
