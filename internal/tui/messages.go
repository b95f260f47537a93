package tui

// MsgVertexStarted is sent when a pipeline vertex (stage or target build)
// begins execution.
type MsgVertexStarted struct {
	Name string
}

// MsgVertexOutput is sent for each output line a vertex produces.
type MsgVertexOutput struct {
	Name string
	Line string
}

// MsgVertexCompleted is sent when a vertex finishes execution.
type MsgVertexCompleted struct {
	Name string
	Err  error
}

// MsgPipelineDone is sent when the whole run has finished.
type MsgPipelineDone struct {
	Err error
}
