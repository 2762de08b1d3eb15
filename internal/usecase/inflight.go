package usecase

import (
	"sync"

	"b2bmarket/pkg/errors"
)

// InFlight rejects a mutation while the same account already has the same
// action outstanding, so a double submit cannot create two records.
type InFlight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{
		active: make(map[string]struct{}),
	}
}

// Begin claims (owner, action). The returned func releases it.
func (f *InFlight) Begin(owner, action string) (func(), error) {
	key := owner + "|" + action

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.active[key]; busy {
		return nil, errors.Conflict("Request already in progress")
	}
	f.active[key] = struct{}{}

	return func() {
		f.mu.Lock()
		delete(f.active, key)
		f.mu.Unlock()
	}, nil
}
