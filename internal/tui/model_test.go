package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(*Model)
	require.True(t, ok)
	return updated
}

func TestModel_TracksVertexLifecycle(t *testing.T) {
	m := NewModel()

	m = update(t, m, MsgVertexStarted{Name: "build x86_64-linux"})
	m = update(t, m, MsgVertexStarted{Name: "build aarch64-linux"})
	require.Len(t, m.vertices, 2)
	assert.Equal(t, statusRunning, m.vertices[0].Status)

	m = update(t, m, MsgVertexOutput{Name: "build x86_64-linux", Line: "compiling"})
	assert.Equal(t, "compiling", m.vertices[0].LastLine)

	m = update(t, m, MsgVertexCompleted{Name: "build x86_64-linux"})
	assert.Equal(t, statusCompleted, m.vertices[0].Status)
	assert.Equal(t, statusRunning, m.vertices[1].Status)

	m = update(t, m, MsgVertexCompleted{Name: "build aarch64-linux", Err: errors.New("exit status 1")})
	assert.Equal(t, statusFailed, m.vertices[1].Status)
}

func TestModel_OutputForUnknownVertexCreatesIt(t *testing.T) {
	m := NewModel()

	m = update(t, m, MsgVertexOutput{Name: "package", Line: "writing entries"})
	require.Len(t, m.vertices, 1)
	assert.Equal(t, statusRunning, m.vertices[0].Status)
	assert.Equal(t, "writing entries", m.vertices[0].LastLine)
}

func TestModel_PipelineDoneQuits(t *testing.T) {
	m := NewModel()

	next, cmd := m.Update(MsgPipelineDone{})
	updated, ok := next.(*Model)
	require.True(t, ok)
	assert.True(t, updated.done)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := NewModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewRendersIcons(t *testing.T) {
	m := NewModel()

	m = update(t, m, MsgVertexStarted{Name: "build"})
	m = update(t, m, MsgVertexCompleted{Name: "build"})
	m = update(t, m, MsgVertexStarted{Name: "package"})
	m = update(t, m, MsgVertexCompleted{Name: "package", Err: errors.New("disk full")})

	view := m.View()
	assert.Contains(t, view, "✓")
	assert.Contains(t, view, "✗")
	assert.Contains(t, view, "build")
	assert.Contains(t, view, "package")
}

func TestModel_ViewWindowsToHeight(t *testing.T) {
	m := NewModel()
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 2})

	for _, name := range []string{"a", "b", "c", "d"} {
		m = update(t, m, MsgVertexStarted{Name: "build " + name})
	}

	view := m.View()
	assert.NotContains(t, view, "build a")
	assert.NotContains(t, view, "build b")
	assert.Contains(t, view, "build c")
	assert.Contains(t, view, "build d")
}
