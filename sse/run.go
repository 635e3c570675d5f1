package sse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/studio"
	"go.uber.org/zap"
)

// OpenFunc acquires the transport for one stream, typically by sending the
// HTTP request and returning the response body.
type OpenFunc func(ctx context.Context) (io.ReadCloser, error)

// Option configures a [Run].
type Option func(*Run)

// WithLogger sets the logger for skipped frames and transport failures.
func WithLogger(l *zap.Logger) Option {
	return func(r *Run) { r.logger = l }
}

// WithBufferSize sets the size of the read buffer. Each Read hands at most
// this many bytes to the decoder.
func WithBufferSize(n int) Option {
	return func(r *Run) {
		if n > 0 {
			r.bufSize = n
		}
	}
}

// Interface compliance check.
var _ studio.Run = (*Run)(nil)

// Run implements [studio.Run] over a transport acquired through an [OpenFunc].
// The transport is opened on the first Next and released exactly once: when a
// terminal snapshot is produced, on a transport error, on context
// cancellation, or on Close, whichever comes first.
type Run struct {
	ctx     context.Context
	open    OpenFunc
	logger  *zap.Logger
	bufSize int

	buf     []byte
	dec     Decoder
	state   studio.State   // latest reduced state
	current studio.State   // latest published state
	pending []studio.State // reduced but not yet published
	opened  bool
	done    bool

	closed atomic.Bool

	mu         sync.Mutex // guards body and the release fields
	body       io.ReadCloser
	stopWatch  func() bool
	once       sync.Once
	releaseErr error
}

// NewRun returns a Run that will open its transport with open. ctx governs
// the whole stream: cancelling it releases the transport and ends the run.
func NewRun(ctx context.Context, open OpenFunc, opts ...Option) *Run {
	r := &Run{
		ctx:     ctx,
		open:    open,
		logger:  zap.NewNop(),
		bufSize: defaultBufferSize,
		state:   studio.NewState(),
		current: studio.NewState(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Next returns the next progress snapshot.
func (r *Run) Next() (studio.State, error) {
	if r.done {
		return studio.State{}, io.EOF
	}
	if err := r.cancelled(); err != nil {
		return studio.State{}, err
	}

	if !r.opened {
		r.opened = true
		if err := r.acquire(); err != nil {
			if cerr := r.cancelled(); cerr != nil {
				return studio.State{}, cerr
			}
			r.logger.Warn("open stream", zap.Error(err))
			r.push(r.state.Fail(err.Error()))
		}
	}

	for len(r.pending) == 0 {
		if r.state.Terminal() {
			r.done = true
			return studio.State{}, io.EOF
		}
		if err := r.fill(); err != nil {
			return studio.State{}, err
		}
	}

	s := r.pending[0]
	r.pending = r.pending[1:]
	r.current = s
	// A terminal snapshot is always the last one reduced.
	if s.Terminal() {
		r.done = true
		_ = r.release()
	}
	return s, nil
}

// State returns the latest snapshot returned by Next.
func (r *Run) State() studio.State {
	return r.current
}

// Close releases the transport and stops the run. Further calls to Next
// return [studio.ErrRunClosed], unless the run had already finished.
func (r *Run) Close() error {
	r.closed.Store(true)
	return r.release()
}

// acquire opens the transport and arranges for context cancellation to
// release it, which unblocks a Read in progress.
func (r *Run) acquire() error {
	body, err := r.open(r.ctx)
	if err != nil {
		return err
	}
	if body == nil {
		return errors.New("sse: open returned no body")
	}
	r.mu.Lock()
	r.body = body
	r.stopWatch = context.AfterFunc(r.ctx, func() { _ = r.release() })
	r.mu.Unlock()
	if r.closed.Load() {
		// Close ran before the body existed and had nothing to release.
		_ = r.release()
	}
	return nil
}

// fill reads one chunk and reduces every frame it completes. It returns an
// error only when the run was cancelled; transport failures become a Failed
// snapshot.
func (r *Run) fill() error {
	if r.buf == nil {
		r.buf = make([]byte, r.bufSize)
	}
	n, err := r.body.Read(r.buf)
	if cerr := r.cancelled(); cerr != nil {
		return cerr
	}
	if n > 0 {
		r.reduce(r.dec.Feed(r.buf[:n]))
	}
	if r.state.Terminal() {
		// Whatever the transport does next is not observable.
		_ = r.release()
		return nil
	}
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		if r.dec.Flush() {
			r.logger.Debug("discarded unterminated trailing line")
		}
		r.push(r.state.Close())
		_ = r.release()
	default:
		r.logger.Warn("read stream", zap.Error(err))
		r.push(r.state.Fail(fmt.Sprintf("sse: read stream: %v", err)))
		_ = r.release()
	}
	return nil
}

// reduce classifies and applies each frame in order, stopping at the first
// terminal transition.
func (r *Run) reduce(frames []string) {
	for _, f := range frames {
		e, ok := Classify(f)
		if !ok {
			r.logger.Debug("skipped frame", zap.String("payload", f))
			continue
		}
		r.push(studio.Apply(r.state, e))
		if r.state.Terminal() {
			return
		}
	}
}

func (r *Run) push(s studio.State) {
	r.state = s
	r.pending = append(r.pending, s)
}

// cancelled reports the context error or ErrRunClosed once the run has been
// cancelled, dropping every unpublished snapshot and releasing the transport.
func (r *Run) cancelled() error {
	err := r.ctx.Err()
	if err == nil && r.closed.Load() {
		err = studio.ErrRunClosed
	}
	if err != nil {
		r.pending = nil
		_ = r.release()
	}
	return err
}

// release closes the transport at most once. It is a no-op before the
// transport has been opened.
func (r *Run) release() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.body == nil {
		return nil
	}
	r.once.Do(func() {
		if r.stopWatch != nil {
			r.stopWatch()
		}
		r.releaseErr = r.body.Close()
	})
	return r.releaseErr
}
