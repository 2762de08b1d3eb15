package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"b2bmarket/internal/domain/service"
	"b2bmarket/pkg/errors"
)

type account struct {
	uid  string
	hash []byte
}

// IdentityProvider issues opaque random tokens. Revoking a uid drops every
// token issued to it.
type IdentityProvider struct {
	mu       sync.Mutex
	accounts map[string]*account
	tokens   map[string]string
	cost     int
}

func NewIdentityProvider() *IdentityProvider {
	return &IdentityProvider{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		cost:     bcrypt.DefaultCost,
	}
}

// NewFastIdentityProvider uses the cheapest hash cost. Tests only.
func NewFastIdentityProvider() *IdentityProvider {
	p := NewIdentityProvider()
	p.cost = bcrypt.MinCost
	return p
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *IdentityProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", errors.BadRequest("Password is too long", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := emailKey(email)
	if _, exists := p.accounts[key]; exists {
		return "", errors.DuplicateAccount(nil)
	}
	acc := &account{uid: uuid.NewString(), hash: hash}
	p.accounts[key] = acc
	return acc.uid, nil
}

func (p *IdentityProvider) SignIn(ctx context.Context, email, password string) (*service.Credentials, error) {
	p.mu.Lock()
	acc, ok := p.accounts[emailKey(email)]
	p.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return nil, errors.InvalidCredentials(nil)
	}

	token := uuid.NewString()
	p.mu.Lock()
	p.tokens[token] = acc.uid
	p.mu.Unlock()

	return &service.Credentials{UID: acc.uid, IDToken: token, ExpiresIn: 3600}, nil
}

func (p *IdentityProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	uid, ok := p.tokens[token]
	if !ok {
		return "", errors.Unauthorized("Invalid or expired token", nil)
	}
	return uid, nil
}

func (p *IdentityProvider) RevokeSessions(ctx context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for token, owner := range p.tokens {
		if owner == uid {
			delete(p.tokens, token)
		}
	}
	return nil
}

func (p *IdentityProvider) EmailRegistered(ctx context.Context, email string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.accounts[emailKey(email)]
	return ok, nil
}
