package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/infrastructure/live"
	apperrors "b2bmarket/pkg/errors"
)

func nextUpdate(t *testing.T, ch <-chan FeedUpdate) FeedUpdate {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("no feed update")
		return FeedUpdate{}
	}
}

// waitFor drains updates until one satisfies ok.
func waitFor(t *testing.T, ch <-chan FeedUpdate, ok func(FeedUpdate) bool) FeedUpdate {
	t.Helper()
	for {
		if u := nextUpdate(t, ch); ok(u) {
			return u
		}
	}
}

func TestProductFeedFollowsWrites(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	seller := h.signUp(t, "seller@example.com", "Acme", entity.RoleSeller)
	buyer := h.signUp(t, "buyer@example.com", "Bina", entity.RoleBuyer)

	updates := make(chan FeedUpdate, 16)
	feed, err := h.feeds.Open(ctx, buyer, FeedProducts, func(u FeedUpdate) { updates <- u })
	require.NoError(t, err)
	feed.Start()
	defer feed.Stop()

	first := nextUpdate(t, updates)
	assert.Equal(t, "snapshot", first.Type)
	assert.Equal(t, FeedProducts, first.Feed)
	assert.Empty(t, first.Items)

	_, err = h.products.Create(ctx, seller, exactProduct("Steel Pipes", 2500))
	require.NoError(t, err)

	u := waitFor(t, updates, func(u FeedUpdate) bool {
		views, _ := u.Items.([]ProductView)
		return len(views) == 1
	})
	views := u.Items.([]ProductView)
	assert.Equal(t, "Steel Pipes", views[0].Name)
	assert.Equal(t, "₹2,500", views[0].PriceDisplay)
}

func TestFeedRoleChecks(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	buyer := h.signUp(t, "buyer@example.com", "Bina", entity.RoleBuyer)
	seller := h.signUp(t, "seller@example.com", "Acme", entity.RoleSeller)
	push := func(FeedUpdate) {}

	_, err := h.feeds.Open(ctx, buyer, FeedEnquiriesReceived, push)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	_, err = h.feeds.Open(ctx, seller, FeedEnquiriesSent, push)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	_, err = h.feeds.Open(ctx, buyer, FeedMyProducts, push)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	_, err = h.feeds.Open(ctx, seller, FeedMyRequirements, push)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	_, err = h.feeds.Open(ctx, buyer, "everything", push)
	assert.True(t, apperrors.IsValidation(err))
}

func TestEnquiriesReceivedFeedIsIntentOrdered(t *testing.T) {
	f := newEnquiryFixture(t)
	ctx := context.Background()

	for _, intent := range []entity.IntentLevel{entity.IntentExploring, entity.IntentUrgent} {
		_, err := f.h.enquiries.Send(ctx, f.buyer, rules.EnquiryInput{ProductID: f.product.ID, Message: "hi", IntentLevel: intent})
		require.NoError(t, err)
	}

	updates := make(chan FeedUpdate, 16)
	feed, err := f.h.feeds.Open(ctx, f.seller, FeedEnquiriesReceived, func(u FeedUpdate) { updates <- u })
	require.NoError(t, err)
	feed.Start()
	defer feed.Stop()

	u := nextUpdate(t, updates)
	views := u.Items.([]EnquiryView)
	require.Len(t, views, 2)
	assert.Equal(t, entity.IntentUrgent, views[0].IntentLevel)
	assert.Equal(t, entity.IntentExploring, views[1].IntentLevel)
}

func TestRequirementsFeedMarksViewerInterest(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	buyer := h.signUp(t, "buyer@example.com", "Bina", entity.RoleBuyer)
	seller := h.signUp(t, "seller@example.com", "Acme", entity.RoleSeller)

	r, err := h.requirements.Post(ctx, buyer, rules.RequirementInput{ProductNeeded: "Cement"})
	require.NoError(t, err)

	updates := make(chan FeedUpdate, 16)
	feed, err := h.feeds.Open(ctx, seller, FeedRequirements, func(u FeedUpdate) { updates <- u })
	require.NoError(t, err)
	feed.Start()
	defer feed.Stop()

	first := nextUpdate(t, updates).Items.([]RequirementView)
	require.Len(t, first, 1)
	assert.False(t, first[0].AlreadyInterested)

	require.NoError(t, h.requirements.ShowInterest(ctx, seller, r.ID))

	waitFor(t, updates, func(u FeedUpdate) bool {
		views := u.Items.([]RequirementView)
		return len(views) == 1 && views[0].AlreadyInterested && views[0].InterestCount == 1
	})
}

func TestFeedReportsRemoteFailure(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	buyer := h.signUp(t, "buyer@example.com", "Bina", entity.RoleBuyer)

	updates := make(chan FeedUpdate, 16)
	feed, err := h.feeds.Open(ctx, buyer, FeedProfile, func(u FeedUpdate) { updates <- u })
	require.NoError(t, err)
	feed.Start()
	defer feed.Stop()

	first := nextUpdate(t, updates)
	profiles := first.Items.([]*entity.UserProfile)
	require.Len(t, profiles, 1)
	assert.Equal(t, buyer.UID, profiles[0].ID)

	h.store.SetFailure(errors.New("unavailable"))

	u := waitFor(t, updates, func(u FeedUpdate) bool { return u.Error != "" })
	assert.Equal(t, apperrors.RemoteFailureMessage, u.Error)
	assert.Nil(t, u.Items)
}

func TestLiveViewStopAndRestart(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	seller := h.signUp(t, "seller@example.com", "Acme", entity.RoleSeller)
	_, err := h.products.Create(ctx, seller, exactProduct("Steel Pipes", 2500))
	require.NoError(t, err)
	chips := exactProduct("Microchips", 40)
	chips.Category = "Electronics"
	_, err = h.products.Create(ctx, seller, chips)
	require.NoError(t, err)

	byCategory := func(category string) Query[*entity.Product] {
		return func(ctx context.Context, hd live.Handler[*entity.Product]) *live.Subscription {
			return h.store.Products().Watch(ctx, repository.ProductFilter{Category: category}, hd)
		}
	}

	changes := make(chan ViewState[*entity.Product], 16)
	view := NewLiveView(ctx, byCategory("Electronics"), nil, func(st ViewState[*entity.Product]) { changes <- st })
	view.Start()

	st := <-changes
	require.Len(t, st.Items, 1)
	assert.Equal(t, "Microchips", st.Items[0].Name)
	assert.False(t, view.State().Loading)

	view.Restart(byCategory("Raw Materials"))
	st = <-changes
	require.Len(t, st.Items, 1)
	assert.Equal(t, "Steel Pipes", st.Items[0].Name)

	view.Stop()
	assert.Eventually(t, func() bool { return h.store.Watchers() == 0 }, time.Second, 10*time.Millisecond)

	_, err = h.products.Create(ctx, seller, exactProduct("Rebar", 700))
	require.NoError(t, err)
	select {
	case st := <-changes:
		t.Fatalf("update after stop: %+v", st)
	case <-time.After(50 * time.Millisecond):
	}
}
