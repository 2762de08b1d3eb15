// Package memory is an in-process implementation of the repositories and the
// identity provider. It keeps the same contract as the Firestore adapters,
// including live snapshots, and is used for tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"b2bmarket/internal/infrastructure/live"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
)

type row[T any] struct {
	value T
	seq   int64
}

type watcher[T any] struct {
	match  func(T) bool
	notify chan struct{}
}

// table is one collection. Values are cloned on the way in and out so
// callers never share memory with the store.
type table[T any] struct {
	mu       sync.Mutex
	store    *Store
	resource string
	rows     map[string]*row[T]
	seq      int64
	watchers map[int64]*watcher[T]
	nextW    int64

	clone     func(T) T
	createdAt func(T) time.Time
}

func newTable[T any](store *Store, resource string, clone func(T) T, createdAt func(T) time.Time) *table[T] {
	return &table[T]{
		store:     store,
		resource:  resource,
		rows:      make(map[string]*row[T]),
		watchers:  make(map[int64]*watcher[T]),
		clone:     clone,
		createdAt: createdAt,
	}
}

func (t *table[T]) insert(id string, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	t.rows[id] = &row[T]{value: t.clone(v), seq: t.seq}
	t.notifyLocked()
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, errors.NotFound(t.resource, nil)
	}
	return t.clone(r.value), nil
}

// mutate applies fn to the stored value under the table lock.
func (t *table[T]) mutate(id string, fn func(T)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.rows[id]
	if !ok {
		return errors.NotFound(t.resource, nil)
	}
	fn(r.value)
	t.notifyLocked()
	return nil
}

// mutateIf is mutate for changes that may be refused. When fn returns an
// error nothing is published.
func (t *table[T]) mutateIf(id string, fn func(T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.rows[id]
	if !ok {
		return errors.NotFound(t.resource, nil)
	}
	next := t.clone(r.value)
	if err := fn(next); err != nil {
		return err
	}
	r.value = next
	t.notifyLocked()
	return nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return errors.NotFound(t.resource, nil)
	}
	delete(t.rows, id)
	t.notifyLocked()
	return nil
}

// query returns matching values newest first. Values created at the same
// instant keep reverse insertion order.
func (t *table[T]) query(match func(T) bool) []T {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if match == nil || match(r.value) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		ci, cj := t.createdAt(rows[i].value), t.createdAt(rows[j].value)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = t.clone(r.value)
	}
	return out
}

func (t *table[T]) notifyLocked() {
	for _, w := range t.watchers {
		select {
		case w.notify <- struct{}{}:
		default:
		}
	}
}

func (t *table[T]) watch(ctx context.Context, op string, match func(T) bool, h live.Handler[T]) *live.Subscription {
	return live.Start(ctx, func(ctx context.Context) live.Source[T] {
		w := &watcher[T]{match: match, notify: make(chan struct{}, 1)}
		w.notify <- struct{}{}

		t.mu.Lock()
		t.nextW++
		id := t.nextW
		t.watchers[id] = w
		t.mu.Unlock()

		return &source[T]{ctx: ctx, table: t, id: id, w: w, op: op}
	}, h)
}

func (t *table[T]) watcherCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.watchers)
}

// source coalesces changes: each Next returns the state at the time it
// runs, which is always the newest full snapshot.
type source[T any] struct {
	ctx   context.Context
	table *table[T]
	id    int64
	w     *watcher[T]
	op    string
	once  sync.Once
}

func (s *source[T]) Next() ([]T, error) {
	select {
	case <-s.ctx.Done():
		return nil, live.ErrStopped
	case <-s.w.notify:
	}
	if err := s.table.store.failure(); err != nil {
		logger.RemoteFailure(s.op, "snapshot", err)
		return nil, errors.Remote(s.op, err)
	}
	return s.table.query(s.w.match), nil
}

func (s *source[T]) Stop() {
	s.once.Do(func() {
		s.table.mu.Lock()
		delete(s.table.watchers, s.id)
		s.table.mu.Unlock()
	})
}
