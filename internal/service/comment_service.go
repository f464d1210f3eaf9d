package service

import (
	"context"
	"fmt"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// commentService implements CommentService interface
type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

// Create adds a comment to an existing video
func (s *commentService) Create(ctx context.Context, owner, videoID primitive.ObjectID, content string) (*domain.Comment, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Video:   videoID,
		Owner:   owner,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByVideo returns a video's comments with author profiles
func (s *commentService) ListByVideo(ctx context.Context, videoID primitive.ObjectID) ([]*domain.CommentWithOwner, error) {
	return s.commentRepo.ListByVideo(ctx, videoID)
}

// Update changes a comment's content; only the author may do so
func (s *commentService) Update(ctx context.Context, actor, commentID primitive.ObjectID, content string) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Owner != actor {
		return nil, fmt.Errorf("only the author may update a comment: %w", ErrForbidden)
	}

	return s.commentRepo.Update(ctx, commentID, content)
}

// Delete removes a comment; only the author may do so
func (s *commentService) Delete(ctx context.Context, actor, commentID primitive.ObjectID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.Owner != actor {
		return fmt.Errorf("only the author may delete a comment: %w", ErrForbidden)
	}

	return s.commentRepo.Delete(ctx, commentID)
}
