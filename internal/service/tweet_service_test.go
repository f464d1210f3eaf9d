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

// fakeTweetRepo is an in-memory TweetRepository
type fakeTweetRepo struct {
	mu     sync.Mutex
	tweets map[primitive.ObjectID]*domain.Tweet
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: map[primitive.ObjectID]*domain.Tweet{}}
}

func (r *fakeTweetRepo) Create(_ context.Context, tweet *domain.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tweet.ID = primitive.NewObjectID()
	clone := *tweet
	r.tweets[tweet.ID] = &clone
	return nil
}

func (r *fakeTweetRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tweet, ok := r.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *tweet
	return &clone, nil
}

func (r *fakeTweetRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Tweet
	for _, tweet := range r.tweets {
		if tweet.Owner == ownerID {
			clone := *tweet
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeTweetRepo) Update(_ context.Context, id primitive.ObjectID, content string) (*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tweet, ok := r.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	tweet.Content = content
	clone := *tweet
	return &clone, nil
}

func (r *fakeTweetRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tweets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tweets, id)
	return nil
}

func TestTweetLifecycle(t *testing.T) {
	svc := NewTweetService(newFakeTweetRepo())
	ctx := context.Background()
	author := primitive.NewObjectID()

	tweet, err := svc.Create(ctx, author, "hello world")
	require.NoError(t, err)
	assert.Equal(t, author, tweet.Owner)

	updated, err := svc.Update(ctx, author, tweet.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	list, err := svc.ListByOwner(ctx, author)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, author, tweet.ID))

	_, err = svc.Get(ctx, tweet.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTweetMutationsAuthorOnly(t *testing.T) {
	svc := NewTweetService(newFakeTweetRepo())
	ctx := context.Background()
	author := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	tweet, err := svc.Create(ctx, author, "hello world")
	require.NoError(t, err)

	_, err = svc.Update(ctx, stranger, tweet.ID, "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, stranger, tweet.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// The tweet is untouched
	got, err := svc.Get(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Content)
}
