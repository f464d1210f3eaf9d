package service

import (
	"context"
	"sync"
	"testing"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeSubRepo is an in-memory SubscriptionRepository
type fakeSubRepo struct {
	mu   sync.Mutex
	subs map[primitive.ObjectID]*domain.Subscription
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{subs: map[primitive.ObjectID]*domain.Subscription{}}
}

func (r *fakeSubRepo) Get(_ context.Context, subscriber, channel primitive.ObjectID) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.Subscriber == subscriber && sub.Channel == channel {
			clone := *sub
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSubRepo) Create(_ context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.ID = primitive.NewObjectID()
	clone := *sub
	r.subs[sub.ID] = &clone
	return nil
}

func (r *fakeSubRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.subs, id)
	return nil
}

func (r *fakeSubRepo) ListSubscribers(_ context.Context, _ primitive.ObjectID) ([]*domain.SubscriptionWithUser, error) {
	return nil, nil
}

func (r *fakeSubRepo) ListSubscribedTo(_ context.Context, _ primitive.ObjectID) ([]*domain.SubscriptionWithUser, error) {
	return nil, nil
}

func newTestSubscriptionService(t *testing.T) (SubscriptionService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	return NewSubscriptionService(newFakeSubRepo(), users), users
}

func addUser(t *testing.T, users *fakeUserRepo, username string) primitive.ObjectID {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user.ID
}

func TestSubscriptionToggleFlips(t *testing.T) {
	svc, users := newTestSubscriptionService(t)
	ctx := context.Background()
	alice := addUser(t, users, "alice")
	channel := addUser(t, users, "channel")

	subscribed, err := svc.Toggle(ctx, alice, channel)
	require.NoError(t, err)
	assert.True(t, subscribed)

	subscribed, err = svc.Toggle(ctx, alice, channel)
	require.NoError(t, err)
	assert.False(t, subscribed)

	subscribed, err = svc.Toggle(ctx, alice, channel)
	require.NoError(t, err)
	assert.True(t, subscribed)
}

func TestSubscriptionToggleRejectsSelf(t *testing.T) {
	svc, users := newTestSubscriptionService(t)
	alice := addUser(t, users, "alice")

	_, err := svc.Toggle(context.Background(), alice, alice)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubscriptionToggleUnknownChannel(t *testing.T) {
	svc, users := newTestSubscriptionService(t)
	alice := addUser(t, users, "alice")

	_, err := svc.Toggle(context.Background(), alice, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
