package studio

// Run is a pull-based iterator over the progress snapshots of one generation.
// Cancellation flows through the context the Run was created with, or through
// Close.
//
// Next returns the State after each processed event. Behavior at the end:
//   - The terminal snapshot (Completed, Failed or Closed) is returned once
//     with a nil error. Later calls return io.EOF.
//   - After Close, or once the context is cancelled, Next publishes nothing
//     further and returns ErrRunClosed or the context error.
//
// State returns the latest published snapshot, NewState() before the first
// Next. Next and State are meant for a single consumer goroutine. Close may be
// called from any goroutine and is idempotent. A Run is not restartable.
type Run interface {
	Next() (State, error)
	State() State
	Close() error
}
