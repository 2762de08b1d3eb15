package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"b2bmarket/internal/adapter/repository/memory"
	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/rules"
)

type harness struct {
	store        *memory.Store
	identity     *memory.IdentityProvider
	sessions     *SessionHub
	inflight     *InFlight
	auth         *AuthUseCase
	users        *UserUseCase
	products     *ProductUseCase
	enquiries    *EnquiryUseCase
	requirements *RequirementUseCase
	feeds        *FeedUseCase
}

func newHarness() *harness {
	store := memory.NewStore()
	identity := memory.NewFastIdentityProvider()
	sessions := NewSessionHub()
	inflight := NewInFlight()
	prices := rules.NewPriceFormatter(language.MustParse("en-IN"), "₹")

	products := NewProductUseCase(store.Products(), nil, prices, inflight)
	return &harness{
		store:        store,
		identity:     identity,
		sessions:     sessions,
		inflight:     inflight,
		auth:         NewAuthUseCase(store.Users(), identity, sessions, inflight),
		users:        NewUserUseCase(store.Users()),
		products:     products,
		enquiries:    NewEnquiryUseCase(store.Enquiries(), store.Products(), inflight),
		requirements: NewRequirementUseCase(store.Requirements(), inflight),
		feeds:        NewFeedUseCase(store.Products(), store.Enquiries(), store.Requirements(), store.Users(), products),
	}
}

func (h *harness) signUp(t *testing.T, email, name string, role entity.UserRole) *Session {
	t.Helper()
	ctx := context.Background()

	res, err := h.auth.Register(ctx, rules.RegistrationInput{
		Email:    email,
		Password: "secret1",
		Name:     name,
		Role:     role,
	})
	require.NoError(t, err)

	s, err := h.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	return s
}

func exactProduct(name string, price float64) rules.ProductInput {
	return rules.ProductInput{
		Name:        name,
		Category:    "Raw Materials",
		PriceType:   entity.PriceExact,
		Price:       entity.Float(price),
		Description: "Industrial grade",
	}
}
