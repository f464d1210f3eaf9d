package service

import (
	"context"
	"fmt"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxPageSize = 100

// videoService implements VideoService interface
type videoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	storage   MediaStorage
	logger    *zap.Logger
}

// NewVideoService creates a new video service
func NewVideoService(
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	storage MediaStorage,
	logger *zap.Logger,
) VideoService {
	return &videoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		storage:   storage,
		logger:    logger,
	}
}

// Upload stores the video file and thumbnail and creates the video document.
// If the document insert fails the uploaded objects are deleted again.
func (s *videoService) Upload(ctx context.Context, owner primitive.ObjectID, req *dto.UploadVideoRequest, videoFile, thumbnail *Upload) (*domain.Video, error) {
	if videoFile == nil {
		return nil, fmt.Errorf("video file is required: %w", ErrInvalidInput)
	}

	videoObj, err := s.storage.Upload(ctx, videoFile.Reader, videoFile.Size, videoFile.Filename, videoFile.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload video file: %w", err)
	}

	video := &domain.Video{
		Owner:       owner,
		Title:       req.Title,
		Description: req.Description,
		VideoFile:   videoObj.URL,
		VideoFileID: videoObj.Key,
		Duration:    req.Duration,
	}

	if thumbnail != nil {
		thumbObj, err := s.storage.Upload(ctx, thumbnail.Reader, thumbnail.Size, thumbnail.Filename, thumbnail.ContentType)
		if err != nil {
			s.cleanup(ctx, videoObj.Key)
			return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
		}
		video.Thumbnail = thumbObj.URL
		video.ThumbnailID = thumbObj.Key
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.cleanup(ctx, video.VideoFileID, video.ThumbnailID)
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	return video, nil
}

// Get returns a video and records it in the viewer's watch history
func (s *videoService) Get(ctx context.Context, viewer, videoID primitive.ObjectID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	// View bookkeeping is best-effort; a failed update never hides the video.
	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		s.logger.Warn("failed to increment views", zap.String("video", videoID.Hex()), zap.Error(err))
	}
	if err := s.userRepo.AddToWatchHistory(ctx, viewer, videoID); err != nil {
		s.logger.Warn("failed to record watch history", zap.String("user", viewer.Hex()), zap.Error(err))
	}

	return video, nil
}

// List returns one page of videos matching the filter
func (s *videoService) List(ctx context.Context, opts repository.ListVideosOptions) (*domain.VideoPage, error) {
	if opts.Page <= 0 || opts.Limit <= 0 {
		return nil, fmt.Errorf("page and limit must be greater than 0: %w", ErrInvalidInput)
	}
	if opts.Limit > maxPageSize {
		opts.Limit = maxPageSize
	}

	videos, total, err := s.videoRepo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	totalPages := total / opts.Limit
	if total%opts.Limit != 0 {
		totalPages++
	}

	return &domain.VideoPage{
		Videos:     videos,
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update changes title/description; only the uploader may do so
func (s *videoService) Update(ctx context.Context, actor, videoID primitive.ObjectID, req *dto.UpdateVideoRequest) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.Owner != actor {
		return nil, fmt.Errorf("only the uploader may update a video: %w", ErrForbidden)
	}

	return s.videoRepo.Update(ctx, videoID, req.Title, req.Description)
}

// Delete removes the video document and its stored media; only the uploader
// may do so. Media cleanup is best-effort once the document is gone.
func (s *videoService) Delete(ctx context.Context, actor, videoID primitive.ObjectID) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video.Owner != actor {
		return fmt.Errorf("only the uploader may delete a video: %w", ErrForbidden)
	}

	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}

	s.cleanup(ctx, video.VideoFileID, video.ThumbnailID)
	return nil
}

func (s *videoService) cleanup(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete storage object",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}
