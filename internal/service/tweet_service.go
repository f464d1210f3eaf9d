package service

import (
	"context"
	"fmt"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// tweetService implements TweetService interface
type tweetService struct {
	tweetRepo repository.TweetRepository
}

// NewTweetService creates a new tweet service
func NewTweetService(tweetRepo repository.TweetRepository) TweetService {
	return &tweetService{tweetRepo: tweetRepo}
}

// Create posts a new tweet
func (s *tweetService) Create(ctx context.Context, owner primitive.ObjectID, content string) (*domain.Tweet, error) {
	tweet := &domain.Tweet{
		Owner:   owner,
		Content: content,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// Get retrieves a tweet by id
func (s *tweetService) Get(ctx context.Context, tweetID primitive.ObjectID) (*domain.Tweet, error) {
	return s.tweetRepo.GetByID(ctx, tweetID)
}

// ListByOwner returns a user's tweets, newest first
func (s *tweetService) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Tweet, error) {
	return s.tweetRepo.ListByOwner(ctx, ownerID)
}

// Update changes a tweet's content; only the author may do so
func (s *tweetService) Update(ctx context.Context, actor, tweetID primitive.ObjectID, content string) (*domain.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.Owner != actor {
		return nil, fmt.Errorf("only the author may update a tweet: %w", ErrForbidden)
	}

	return s.tweetRepo.Update(ctx, tweetID, content)
}

// Delete removes a tweet; only the author may do so
func (s *tweetService) Delete(ctx context.Context, actor, tweetID primitive.ObjectID) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.Owner != actor {
		return fmt.Errorf("only the author may delete a tweet: %w", ErrForbidden)
	}

	return s.tweetRepo.Delete(ctx, tweetID)
}
