package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanSource struct {
	ctx     context.Context
	ch      chan []int
	errs    chan error
	stopped chan struct{}
	once    sync.Once
}

func newChanSource() *chanSource {
	return &chanSource{
		ch:      make(chan []int),
		errs:    make(chan error),
		stopped: make(chan struct{}),
	}
}

func (s *chanSource) open(ctx context.Context) Source[int] {
	s.ctx = ctx
	return s
}

func (s *chanSource) Next() ([]int, error) {
	select {
	case <-s.ctx.Done():
		return nil, ErrStopped
	case items := <-s.ch:
		return items, nil
	case err := <-s.errs:
		return nil, err
	}
}

func (s *chanSource) Stop() {
	s.once.Do(func() { close(s.stopped) })
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
}

func TestDeliversSnapshotsInOrder(t *testing.T) {
	src := newChanSource()
	got := make(chan Snapshot[int], 3)

	sub := Start(context.Background(), src.open, func(s Snapshot[int]) { got <- s })
	defer sub.Cancel()

	src.ch <- []int{1}
	src.ch <- []int{1, 2}

	assert.Equal(t, []int{1}, (<-got).Items)
	assert.Equal(t, []int{1, 2}, (<-got).Items)
}

func TestErrorIsTerminal(t *testing.T) {
	src := newChanSource()
	got := make(chan Snapshot[int], 2)

	sub := Start(context.Background(), src.open, func(s Snapshot[int]) { got <- s })

	boom := errors.New("permission denied")
	src.errs <- boom

	snap := <-got
	assert.ErrorIs(t, snap.Err, boom)
	assert.Nil(t, snap.Items)

	waitClosed(t, sub.Done())
	waitClosed(t, src.stopped)
	assert.Len(t, got, 0)
}

func TestCancelIsSynchronous(t *testing.T) {
	src := newChanSource()
	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	sub := Start(context.Background(), src.open, func(s Snapshot[int]) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(entered)
		<-release
	})

	src.ch <- []int{1}
	<-entered

	cancelled := make(chan struct{})
	go func() {
		sub.Cancel()
		close(cancelled)
	}()

	select {
	case <-cancelled:
		t.Fatal("Cancel returned while the handler was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	waitClosed(t, cancelled)
	waitClosed(t, sub.Done())
	waitClosed(t, src.stopped)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestParentContextStopsSubscription(t *testing.T) {
	src := newChanSource()
	ctx, cancel := context.WithCancel(context.Background())

	sub := Start(ctx, src.open, func(Snapshot[int]) {})
	cancel()

	waitClosed(t, sub.Done())
	require.NotPanics(t, sub.Cancel)
	require.NotPanics(t, sub.Cancel)
}
