// Package tui provides a terminal view of per-target pipeline progress.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// VertexState is the display state of one pipeline vertex.
type VertexState struct {
	Name     string
	Status   string
	LastLine string
}

type styles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	failed    lipgloss.Style
	output    lipgloss.Style
}

// Model is the Bubble Tea model rendering pipeline progress.
type Model struct {
	vertices []VertexState
	width    int
	height   int
	spinner  spinner.Model
	styles   styles
	done     bool
}

// NewModel creates a new TUI model.
func NewModel() *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))

	return &Model{
		spinner: s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
			completed: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
			output:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgVertexStarted:
		m.upsert(msg.Name, statusRunning, "")
	case MsgVertexOutput:
		m.upsert(msg.Name, "", msg.Line)
	case MsgVertexCompleted:
		status := statusCompleted
		if msg.Err != nil {
			status = statusFailed
		}
		m.upsert(msg.Name, status, "")
	case MsgPipelineDone:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// upsert updates an existing vertex or appends a new one. Empty status or
// line arguments leave the existing value untouched.
func (m *Model) upsert(name, status, line string) {
	for i := range m.vertices {
		if m.vertices[i].Name == name {
			if status != "" {
				m.vertices[i].Status = status
			}
			if line != "" {
				m.vertices[i].LastLine = line
			}
			return
		}
	}
	if status == "" {
		status = statusRunning
	}
	m.vertices = append(m.vertices, VertexState{Name: name, Status: status, LastLine: line})
}

// View renders the vertex list, newest lines visible when the list overflows
// the window height.
func (m *Model) View() string {
	var s strings.Builder

	start := 0
	if m.height > 0 && len(m.vertices) > m.height {
		start = len(m.vertices) - m.height
	}

	for i := start; i < len(m.vertices); i++ {
		v := m.vertices[i]

		var icon string
		var style lipgloss.Style
		switch v.Status {
		case statusCompleted:
			icon = "✓"
			style = m.styles.completed
		case statusFailed:
			icon = "✗"
			style = m.styles.failed
		default:
			icon = m.spinner.View()
			style = m.styles.running
		}

		line := fmt.Sprintf("%s %s", style.Render(icon), v.Name)
		if v.Status == statusRunning && v.LastLine != "" {
			line += "  " + m.styles.output.Render(v.LastLine)
		}
		s.WriteString(line + "\n")
	}

	return s.String()
}
