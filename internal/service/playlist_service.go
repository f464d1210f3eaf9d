package service

import (
	"context"
	"fmt"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// playlistService implements PlaylistService interface
type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) PlaylistService {
	return &playlistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
	}
}

// Create makes a new empty playlist
func (s *playlistService) Create(ctx context.Context, owner primitive.ObjectID, req *dto.CreatePlaylistRequest) (*domain.Playlist, error) {
	playlist := &domain.Playlist{
		Owner:       owner,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// Get retrieves a playlist by id
func (s *playlistService) Get(ctx context.Context, playlistID primitive.ObjectID) (*domain.Playlist, error) {
	return s.playlistRepo.GetByID(ctx, playlistID)
}

// ListByOwner returns all playlists owned by a user
func (s *playlistService) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Playlist, error) {
	return s.playlistRepo.ListByOwner(ctx, ownerID)
}

// AddVideo appends an existing video to the playlist; only the owner may do so
func (s *playlistService) AddVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*domain.Playlist, error) {
	if err := s.authorize(ctx, actor, playlistID); err != nil {
		return nil, err
	}
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	return s.playlistRepo.AddVideo(ctx, playlistID, videoID)
}

// RemoveVideo removes a video from the playlist; only the owner may do so
func (s *playlistService) RemoveVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*domain.Playlist, error) {
	if err := s.authorize(ctx, actor, playlistID); err != nil {
		return nil, err
	}
	return s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
}

// Update changes name and description; only the owner may do so
func (s *playlistService) Update(ctx context.Context, actor, playlistID primitive.ObjectID, req *dto.UpdatePlaylistRequest) (*domain.Playlist, error) {
	if err := s.authorize(ctx, actor, playlistID); err != nil {
		return nil, err
	}
	return s.playlistRepo.Update(ctx, playlistID, req.Name, req.Description)
}

// Delete removes a playlist; only the owner may do so
func (s *playlistService) Delete(ctx context.Context, actor, playlistID primitive.ObjectID) error {
	if err := s.authorize(ctx, actor, playlistID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

func (s *playlistService) authorize(ctx context.Context, actor, playlistID primitive.ObjectID) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.Owner != actor {
		return fmt.Errorf("only the owner may modify a playlist: %w", ErrForbidden)
	}
	return nil
}
