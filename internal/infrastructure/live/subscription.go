// Package live delivers successive full snapshots of a remote query to a
// handler until the subscription is cancelled.
package live

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by a Source whose underlying stream has ended
// because it was stopped. It is never delivered to handlers.
var ErrStopped = errors.New("live: source stopped")

// Snapshot is the complete current result of a query. When Err is set the
// subscription has terminated and Items is empty.
type Snapshot[T any] struct {
	Items []T
	Err   error
}

// Source yields snapshots. Next blocks until the next snapshot is ready or
// the context the source was opened with is done.
type Source[T any] interface {
	Next() ([]T, error)
	Stop()
}

// Handler receives snapshots in order, one at a time.
type Handler[T any] func(Snapshot[T])

// Subscription is a running query. After Cancel returns the handler is not
// running and will not be called again.
type Subscription struct {
	cancel    context.CancelFunc
	mu        sync.Mutex
	cancelled bool
	done      chan struct{}
}

// Start opens a source with a context derived from ctx and pumps its
// snapshots into h on a dedicated goroutine. An error is delivered once as
// a terminal snapshot.
func Start[T any](ctx context.Context, open func(ctx context.Context) Source[T], h Handler[T]) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	src := open(ctx)
	go pump(ctx, s, src, h)
	return s
}

func pump[T any](ctx context.Context, s *Subscription, src Source[T], h Handler[T]) {
	defer close(s.done)
	defer src.Stop()

	for {
		items, err := src.Next()
		if errors.Is(err, ErrStopped) {
			return
		}

		snap := Snapshot[T]{Items: items, Err: err}
		if err != nil {
			snap.Items = nil
		}
		if !s.deliver(ctx, func() { h(snap) }) || err != nil {
			return
		}
	}
}

func (s *Subscription) deliver(ctx context.Context, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled || ctx.Err() != nil {
		return false
	}
	fn()
	return true
}

// Cancel stops the subscription. It waits for an in-progress delivery to
// finish, so it must not be called from inside the handler; cancel the
// parent context there instead. Calling Cancel more than once is a no-op.
func (s *Subscription) Cancel() {
	s.cancel()
	s.mu.Lock()
	s.cancelled = true
	s.mu.Unlock()
}

// Done is closed when the pump goroutine has exited.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
