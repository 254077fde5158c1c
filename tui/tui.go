package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zaolin/conshim/console"
	"github.com/zaolin/conshim/consolelog"
	"github.com/zaolin/conshim/internal/compress"
)

const followInterval = 500 * time.Millisecond

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	consoleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	debugStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model is the log viewer state
type Model struct {
	path      string
	entries   []consolelog.Entry
	showDebug bool
	follow    bool
	followGen int
	ready     bool
	err       error

	viewport viewport.Model
	spinner  spinner.Model
}

// Messages
type loadedMsg struct {
	entries []consolelog.Entry
	err     error
}
type tickMsg struct {
	gen int
}

// New creates a viewer for the log at path
func New(path string, follow bool) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	return Model{
		path:      path,
		showDebug: true,
		follow:    follow,
		spinner:   s,
	}
}

// Load reads every parseable entry from a plain or compressed log
func Load(path string) ([]consolelog.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := compress.NewReader(f, compress.Detect(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	// log lines have no length cap
	var entries []consolelog.Entry
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if e, ok := consolelog.ParseLine(line); ok {
				entries = append(entries, e)
			}
		}
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
	}
}

func (m Model) load() tea.Msg {
	entries, err := Load(m.path)
	return loadedMsg{entries: entries, err: err}
}

// tick schedules a reload for follow generation gen; Update drops ticks
// from older generations
func tick(gen int) tea.Cmd {
	return tea.Tick(followInterval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.load, m.spinner.Tick}
	if m.follow {
		cmds = append(cmds, tick(m.followGen))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "d":
			m.showDebug = !m.showDebug
			m.refresh()
			return m, nil
		case "f":
			m.follow = !m.follow
			m.followGen++
			if m.follow {
				m.viewport.GotoBottom()
				return m, tea.Batch(m.load, tick(m.followGen), m.spinner.Tick)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		// title + blank + footer
		height := msg.Height - 3
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()

	case loadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
		}
		m.refresh()
		return m, nil

	case tickMsg:
		if !m.follow || msg.gen != m.followGen {
			return m, nil
		}
		return m, tea.Batch(m.load, tick(m.followGen))

	case spinner.TickMsg:
		if !m.follow {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.visibleLines(), "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// visibleLines renders the entries that pass the current filter
func (m Model) visibleLines() []string {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if e.Event == consolelog.EventDebug && !m.showDebug {
			continue
		}
		lines = append(lines, renderEntry(e))
	}
	return lines
}

func renderEntry(e consolelog.Entry) string {
	ts := helpStyle.Render(e.Time.Format("15:04:05.000"))
	switch e.Event {
	case consolelog.EventConsole:
		msg, _ := e.Message()
		return ts + " " + consoleStyle.Render(msg)
	case consolelog.EventDebug:
		msg, _ := e.Message()
		return ts + " " + debugStyle.Render(msg)
	default:
		return ts + " " + eventStyle.Render(string(e.Event)) + " " + e.Fields
	}
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	title := titleStyle.Render("conshim " + m.path)
	if m.follow {
		title += " " + m.spinner.View()
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
		return b.String()
	}

	if m.ready {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	debug := "shown"
	if !m.showDebug {
		debug = "hidden"
	}
	follow := "off"
	if m.follow {
		follow = "on"
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("q quit • d debug (%s) • f follow (%s) • %d entries", debug, follow, len(m.entries))))
	return b.String()
}

// Run shows the viewer until the user quits. Console output is
// suppressed while the viewer owns the screen.
func Run(path string, follow bool) error {
	console.Default().SetSuppressed(true)
	defer console.Default().SetSuppressed(false)

	p := tea.NewProgram(New(path, follow), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
