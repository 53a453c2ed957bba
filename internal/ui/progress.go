// Package ui renders batch evaluation progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rational/internal/batch"
)

// maxRows caps the per-expression list; larger batches show only the
// expressions currently being evaluated plus the counters.
const maxRows = 12

type progressModel struct {
	title   string
	events  <-chan batch.Event
	spinner spinner.Model
	prog    progress.Model
	items   []exprItem
	index   map[int]int // line -> items index
	counts  map[batch.Status]int
	width   int
	done    bool
}

type exprItem struct {
	line   int
	expr   string
	status batch.Status
}

type eventMsg batch.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders the progress of
// items, fed by events until the channel is closed.
func NewProgressModel(title string, items []batch.Item, events <-chan batch.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   make([]exprItem, 0, len(items)),
		index:   make(map[int]int, len(items)),
		counts:  map[batch.Status]int{batch.StatusQueued: len(items)},
		width:   80,
	}
	for i, it := range items {
		m.items = append(m.items, exprItem{line: it.Line, expr: it.Expr, status: batch.StatusQueued})
		m.index[it.Line] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(batch.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
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
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 8
	nameWidth := max(m.width-statusWidth-12, 20)
	for _, item := range m.visibleItems() {
		status := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status))
		fmt.Fprintf(&b, "  %s %5d  %s\n", status, item.line, truncate(item.expr, nameWidth))
	}
	if len(m.items) > maxRows {
		fmt.Fprintf(&b, "  %d done, %d cached, %d failed, %d queued\n",
			m.counts[batch.StatusDone], m.counts[batch.StatusCached],
			m.counts[batch.StatusError], m.counts[batch.StatusQueued])
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

func (m *progressModel) visibleItems() []exprItem {
	if len(m.items) <= maxRows {
		return m.items
	}
	var out []exprItem
	for _, item := range m.items {
		if item.status == batch.StatusWorking {
			out = append(out, item)
			if len(out) == maxRows {
				break
			}
		}
	}
	return out
}

func (m *progressModel) finished() int {
	return m.counts[batch.StatusDone] + m.counts[batch.StatusCached] + m.counts[batch.StatusError]
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev batch.Event) tea.Cmd {
	idx, ok := m.index[ev.Line]
	if !ok {
		return nil
	}
	prev := m.items[idx].status
	if prev == ev.Status {
		return nil
	}
	m.counts[prev]--
	m.counts[ev.Status]++
	m.items[idx].status = ev.Status

	total := 0.0
	for _, item := range m.items {
		total += progressFromStatus(item.status)
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func progressFromStatus(status batch.Status) float64 {
	switch status {
	case batch.StatusDone, batch.StatusCached, batch.StatusError:
		return 1.0
	case batch.StatusWorking:
		return 0.5
	default:
		return 0.0
	}
}

func styleStatus(status batch.Status) lipgloss.Style {
	switch status {
	case batch.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case batch.StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case batch.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case batch.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
