package mock

import (
	"io"
	"sync"

	"github.com/fwojciec/studio"
)

// Interface compliance check.
var _ studio.Run = (*Run)(nil)

// Run is a test double for studio.Run.
// NextFn panics when nil to catch missing setup. StateFn and CloseFn are
// nil-safe (NewState() and no-op) because callers commonly defer Close.
type Run struct {
	NextFn  func() (studio.State, error)
	StateFn func() studio.State
	CloseFn func() error
}

// Next delegates to NextFn.
func (r *Run) Next() (studio.State, error) {
	return r.NextFn()
}

// State delegates to StateFn. Returns studio.NewState() when StateFn is nil.
func (r *Run) State() studio.State {
	if r.StateFn == nil {
		return studio.NewState()
	}
	return r.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (r *Run) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}

// Replay returns a Run that publishes states in order and then io.EOF.
// Close makes later calls return studio.ErrRunClosed. It is safe for one
// consumer plus a concurrent Close.
func Replay(states ...studio.State) *Run {
	var (
		mu      sync.Mutex
		i       int
		closed  bool
		current = studio.NewState()
	)
	return &Run{
		NextFn: func() (studio.State, error) {
			mu.Lock()
			defer mu.Unlock()
			if i >= len(states) {
				return studio.State{}, io.EOF
			}
			if closed {
				return studio.State{}, studio.ErrRunClosed
			}
			current = states[i]
			i++
			return current, nil
		},
		StateFn: func() studio.State {
			mu.Lock()
			defer mu.Unlock()
			return current
		},
		CloseFn: func() error {
			mu.Lock()
			defer mu.Unlock()
			closed = true
			return nil
		},
	}
}
