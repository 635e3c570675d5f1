package studio

// Outcome is the in-progress or terminal result of one generation run.
type Outcome int

const (
	OutcomeRunning   Outcome = iota // No terminal event observed yet.
	OutcomeCompleted                // Server delivered the artifact.
	OutcomeFailed                   // Server or transport reported a failure.
	OutcomeClosed                   // Stream ended without a terminal event.
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// EntryKind identifies the kind of a ProgressEntry.
type EntryKind int

const (
	EntryStatus   EntryKind = iota // From EventStatus.
	EntryActivity                  // From EventAgentActivity.
)

// ProgressEntry is one non-terminal event recorded in the progress log.
// Message is set for status entries; Author and Preview for activity entries.
type ProgressEntry struct {
	Kind    EntryKind
	Message string
	Author  string
	Preview string
}

// State is a snapshot of one generation run: the progress log in arrival
// order plus the current outcome.
//
// Content is set only when Outcome is OutcomeCompleted and Message only when
// Outcome is OutcomeFailed. SessionID holds the last session id a status
// event reported.
//
// States are values. Apply never writes into storage that an earlier State
// can observe, so snapshots may be retained and shared freely.
type State struct {
	Log       []ProgressEntry
	Outcome   Outcome
	Content   string
	Message   string
	SessionID string
}

// NewState returns the initial state: running with an empty log.
func NewState() State {
	return State{Outcome: OutcomeRunning}
}

// Terminal reports whether the state accepts no further transitions.
func (s State) Terminal() bool {
	return s.Outcome != OutcomeRunning
}

// Apply folds one event into s and returns the resulting state. Apply is pure
// and total. Once s is terminal every event is ignored, so the first terminal
// event wins.
func Apply(s State, e Event) State {
	if s.Terminal() {
		return s
	}
	switch e := e.(type) {
	case EventStatus:
		s.Log = appendEntry(s.Log, ProgressEntry{Kind: EntryStatus, Message: e.Message})
		if e.SessionID != "" {
			s.SessionID = e.SessionID
		}
	case EventAgentActivity:
		s.Log = appendEntry(s.Log, ProgressEntry{Kind: EntryActivity, Author: e.Author, Preview: e.Preview})
	case EventCompletion:
		s.Outcome = OutcomeCompleted
		s.Content = e.Content
	case EventFailure:
		s.Outcome = OutcomeFailed
		s.Message = e.Message
	}
	return s
}

// Close marks a running state as closed: the stream ended without a terminal
// event. Terminal states are returned unchanged.
func (s State) Close() State {
	if s.Terminal() {
		return s
	}
	s.Outcome = OutcomeClosed
	return s
}

// Fail marks a running state as failed with msg, keeping the log accumulated
// so far. Terminal states are returned unchanged.
func (s State) Fail(msg string) State {
	if s.Terminal() {
		return s
	}
	s.Outcome = OutcomeFailed
	s.Message = msg
	return s
}

// appendEntry appends to a copy-on-write view of log. The three-index slice
// caps capacity at length, forcing append to allocate, so two states derived
// from the same parent never share a backing array slot.
func appendEntry(log []ProgressEntry, e ProgressEntry) []ProgressEntry {
	return append(log[:len(log):len(log)], e)
}
