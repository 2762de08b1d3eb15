package usecase

import (
	"sync"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/pkg/errors"
)

// Session is the signed-in account for one request or connection. It is
// built by the auth middleware and passed to use cases explicitly.
type Session struct {
	UID     string
	Token   string
	Profile *entity.UserProfile
}

func (s *Session) RequireRole(role entity.UserRole) error {
	if s == nil || s.Profile == nil {
		return errors.Unauthorized("Authentication required", nil)
	}
	if s.Profile.Role != role {
		return errors.Forbidden("This action is only available to "+string(role)+"s", nil)
	}
	return nil
}

type SessionEventKind string

const (
	SessionPresent SessionEventKind = "session-present"
	SessionAbsent  SessionEventKind = "session-absent"
)

type SessionEvent struct {
	Kind    SessionEventKind
	UID     string
	Profile *entity.UserProfile
}

// SessionHub fans out sign-in and sign-out events. Listeners run on the
// publisher's goroutine, outside the hub's lock.
type SessionHub struct {
	mu        sync.Mutex
	listeners map[int]func(SessionEvent)
	next      int
}

func NewSessionHub() *SessionHub {
	return &SessionHub{
		listeners: make(map[int]func(SessionEvent)),
	}
}

// Subscribe registers fn and returns a function that removes it.
func (h *SessionHub) Subscribe(fn func(SessionEvent)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

func (h *SessionHub) Publish(ev SessionEvent) {
	h.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
