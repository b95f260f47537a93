package telemetry

import (
	"context"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/relpack/relpack/internal/core/ports"
	"github.com/relpack/relpack/internal/tui"
)

// Sender delivers messages to the terminal view. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

var _ ports.Telemetry = (*TUIBridge)(nil)

// TUIBridge implements ports.Telemetry by forwarding vertex lifecycle events
// and output lines to a Bubble Tea program.
type TUIBridge struct {
	sender Sender
}

// NewTUIBridge returns a new TUIBridge.
func NewTUIBridge(sender Sender) *TUIBridge {
	return &TUIBridge{sender: sender}
}

// Record starts a vertex and announces it to the view.
func (b *TUIBridge) Record(ctx context.Context, name string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	b.sender.Send(tui.MsgVertexStarted{Name: name})
	v := &bridgeVertex{name: name, sender: b.sender}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing; the CLI signals completion to the view itself once the
// run's outcome is known.
func (b *TUIBridge) Close() error { return nil }

type bridgeVertex struct {
	name   string
	sender Sender
}

func (v *bridgeVertex) Stdout() io.Writer {
	return &bridgeWriter{vertex: v}
}

func (v *bridgeVertex) Stderr() io.Writer {
	return &bridgeWriter{vertex: v}
}

func (v *bridgeVertex) Complete(err error) {
	v.sender.Send(tui.MsgVertexCompleted{Name: v.name, Err: err})
}

// bridgeWriter forwards process output to the view one line at a time.
type bridgeWriter struct {
	vertex *bridgeVertex
	mu     sync.Mutex
	buf    strings.Builder
}

func (w *bridgeWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		s := w.buf.String()
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			break
		}
		if line := s[:i]; line != "" {
			w.vertex.sender.Send(tui.MsgVertexOutput{Name: w.vertex.name, Line: line})
		}
		w.buf.Reset()
		w.buf.WriteString(s[i+1:])
	}
	return len(p), nil
}
