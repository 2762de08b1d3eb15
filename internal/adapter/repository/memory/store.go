package memory

import (
	"sync"
	"time"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
)

// Store holds all four collections.
type Store struct {
	mu   sync.RWMutex
	fail error
	now  func() time.Time

	products     *table[*entity.Product]
	enquiries    *table[*entity.Enquiry]
	requirements *table[*entity.BuyerRequirement]
	users        *table[*entity.UserProfile]
}

type Option func(*Store)

// WithClock replaces the clock used for server timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	s.products = newTable(s, "Product", (*entity.Product).Clone,
		func(p *entity.Product) time.Time { return p.CreatedAt })
	s.enquiries = newTable(s, "Enquiry", (*entity.Enquiry).Clone,
		func(e *entity.Enquiry) time.Time { return e.CreatedAt })
	s.requirements = newTable(s, "Requirement", (*entity.BuyerRequirement).Clone,
		func(r *entity.BuyerRequirement) time.Time { return r.CreatedAt })
	s.users = newTable(s, "User", (*entity.UserProfile).Clone,
		func(u *entity.UserProfile) time.Time { return u.CreatedAt })
	return s
}

// SetFailure makes every following operation fail as a remote error until
// it is called again with nil.
func (s *Store) SetFailure(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()

	s.products.mu.Lock()
	s.products.notifyLocked()
	s.products.mu.Unlock()
	s.enquiries.mu.Lock()
	s.enquiries.notifyLocked()
	s.enquiries.mu.Unlock()
	s.requirements.mu.Lock()
	s.requirements.notifyLocked()
	s.requirements.mu.Unlock()
	s.users.mu.Lock()
	s.users.notifyLocked()
	s.users.mu.Unlock()
}

func (s *Store) failure() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fail
}

func (s *Store) check(op, subject string) error {
	if err := s.failure(); err != nil {
		logger.RemoteFailure(op, subject, err)
		return errors.Remote(op, err)
	}
	return nil
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// Watchers reports open live subscriptions across all collections.
func (s *Store) Watchers() int {
	return s.products.watcherCount() + s.enquiries.watcherCount() +
		s.requirements.watcherCount() + s.users.watcherCount()
}

func (s *Store) Products() repository.ProductRepository {
	return &productRepository{store: s, t: s.products}
}

func (s *Store) Enquiries() repository.EnquiryRepository {
	return &enquiryRepository{store: s, t: s.enquiries}
}

func (s *Store) Requirements() repository.RequirementRepository {
	return &requirementRepository{store: s, t: s.requirements}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s, t: s.users}
}
