package studio

// Event is a sealed interface representing one classified record from the
// generation stream. Transport failures never arrive as events; they surface
// through the Run as a terminal State.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventStatus is a free-form workflow status message.
type EventStatus struct {
	Message string
	// SessionID is the server-side session the workflow runs in, if the
	// server reported one.
	SessionID string
}

func (EventStatus) event() {}

// EventAgentActivity reports that a workflow agent produced output.
// An empty Preview means the server sent none.
type EventAgentActivity struct {
	Author  string
	Preview string
}

func (EventAgentActivity) event() {}

// EventCompletion carries the full generated artifact.
type EventCompletion struct {
	Content string
}

func (EventCompletion) event() {}

// EventFailure carries a failure reported by the server.
type EventFailure struct {
	Message string
}

func (EventFailure) event() {}

// Interface compliance checks.
var (
	_ Event = EventStatus{}
	_ Event = EventAgentActivity{}
	_ Event = EventCompletion{}
	_ Event = EventFailure{}
)
