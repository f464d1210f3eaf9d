package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// likeService implements LikeService interface
type likeService struct {
	likeRepo repository.LikeRepository
}

// NewLikeService creates a new like service
func NewLikeService(likeRepo repository.LikeRepository) LikeService {
	return &likeService{likeRepo: likeRepo}
}

// ToggleVideo flips the user's like on a video; returns the resulting state
func (s *likeService) ToggleVideo(ctx context.Context, userID, videoID primitive.ObjectID) (bool, error) {
	existing, err := s.likeRepo.GetByVideo(ctx, videoID, userID)
	return s.toggle(ctx, existing, err, &domain.Like{LikedBy: userID, Video: &videoID})
}

// ToggleComment flips the user's like on a comment
func (s *likeService) ToggleComment(ctx context.Context, userID, commentID primitive.ObjectID) (bool, error) {
	existing, err := s.likeRepo.GetByComment(ctx, commentID, userID)
	return s.toggle(ctx, existing, err, &domain.Like{LikedBy: userID, Comment: &commentID})
}

// ToggleTweet flips the user's like on a tweet
func (s *likeService) ToggleTweet(ctx context.Context, userID, tweetID primitive.ObjectID) (bool, error) {
	existing, err := s.likeRepo.GetByTweet(ctx, tweetID, userID)
	return s.toggle(ctx, existing, err, &domain.Like{LikedBy: userID, Tweet: &tweetID})
}

// LikedVideos returns the videos the user has liked
func (s *likeService) LikedVideos(ctx context.Context, userID primitive.ObjectID) ([]*domain.LikedVideo, error) {
	return s.likeRepo.ListLikedVideos(ctx, userID)
}

func (s *likeService) toggle(ctx context.Context, existing *domain.Like, lookupErr error, fresh *domain.Like) (bool, error) {
	if lookupErr == nil {
		if err := s.likeRepo.Delete(ctx, existing.ID); err != nil {
			return false, fmt.Errorf("failed to remove like: %w", err)
		}
		return false, nil
	}
	if !errors.Is(lookupErr, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to look up like: %w", lookupErr)
	}

	if err := s.likeRepo.Create(ctx, fresh); err != nil {
		return false, fmt.Errorf("failed to create like: %w", err)
	}
	return true, nil
}
