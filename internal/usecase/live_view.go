package usecase

import (
	"context"
	"sync"

	"b2bmarket/internal/infrastructure/live"
)

// ViewState is what a live view currently shows. Loading is true until the
// first snapshot. Err is set when the subscription failed and stopped.
type ViewState[T any] struct {
	Items   []T
	Loading bool
	Err     error
}

// Query opens a subscription for one query shape.
type Query[T any] func(ctx context.Context, h live.Handler[T]) *live.Subscription

// LiveView mirrors one remote query into local state. It can be stopped
// and restarted with a different query.
type LiveView[T any] struct {
	ctx       context.Context
	transform func([]T) []T
	onChange  func(ViewState[T])

	mu    sync.Mutex
	query Query[T]
	sub   *live.Subscription
	gen   int
	state ViewState[T]
}

// NewLiveView does not subscribe until Start. transform and onChange may be
// nil. onChange runs on the subscription goroutine.
func NewLiveView[T any](ctx context.Context, query Query[T], transform func([]T) []T, onChange func(ViewState[T])) *LiveView[T] {
	return &LiveView[T]{
		ctx:       ctx,
		query:     query,
		transform: transform,
		onChange:  onChange,
	}
}

func (v *LiveView[T]) Start() {
	v.mu.Lock()
	if v.sub != nil {
		v.mu.Unlock()
		return
	}
	v.gen++
	gen := v.gen
	v.state = ViewState[T]{Loading: true}
	query := v.query
	v.mu.Unlock()

	sub := query(v.ctx, func(s live.Snapshot[T]) { v.apply(gen, s) })

	v.mu.Lock()
	keep := v.gen == gen && v.state.Err == nil
	if keep {
		v.sub = sub
	}
	v.mu.Unlock()

	if !keep {
		sub.Cancel()
	}
}

func (v *LiveView[T]) apply(gen int, s live.Snapshot[T]) {
	var next ViewState[T]
	if s.Err != nil {
		next = ViewState[T]{Err: s.Err}
	} else {
		items := s.Items
		if v.transform != nil {
			items = v.transform(items)
		}
		next = ViewState[T]{Items: items}
	}

	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		return
	}
	v.state = next
	if s.Err != nil {
		v.sub = nil
	}
	v.mu.Unlock()

	if v.onChange != nil {
		v.onChange(next)
	}
}

// Stop cancels the subscription. No onChange call starts after Stop
// returns. Must not be called from onChange.
func (v *LiveView[T]) Stop() {
	v.mu.Lock()
	sub := v.sub
	v.sub = nil
	v.gen++
	v.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

// Restart swaps the query and subscribes again from a loading state.
func (v *LiveView[T]) Restart(query Query[T]) {
	v.Stop()
	v.mu.Lock()
	v.query = query
	v.mu.Unlock()
	v.Start()
}

func (v *LiveView[T]) State() ViewState[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}
