package service

import (
	"context"
	"io"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"github.com/pranav1597/viewtube-backend/pkg/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload is a file received from a client, ready to stream into media storage.
type Upload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// MediaStorage is the slice of the storage client the services depend on.
type MediaStorage interface {
	Upload(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (*storage.Object, error)
	Delete(ctx context.Context, key string) error
}

// AuthService defines authentication and user profile operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest, profilePic, coverPic *Upload) (*AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error)
	// Refresh verifies the presented refresh token against the stored one and
	// rotates the pair; a superseded token fails with ErrUnauthorized.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, userID primitive.ObjectID) error
	// Authenticate verifies an access token and resolves the identity it
	// names, with sensitive fields excluded. Used by the authorization gate.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, req *dto.ChangePasswordRequest) error
	UpdateAccount(ctx context.Context, userID primitive.ObjectID, req *dto.UpdateAccountRequest) (*domain.User, error)
	UpdateProfilePic(ctx context.Context, userID primitive.ObjectID, pic *Upload) (*domain.User, error)
	UpdateCoverPic(ctx context.Context, userID primitive.ObjectID, pic *Upload) (*domain.User, error)
	GetChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*domain.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]*domain.VideoWithOwner, error)
}

// VideoService defines video operations
type VideoService interface {
	Upload(ctx context.Context, owner primitive.ObjectID, req *dto.UploadVideoRequest, videoFile, thumbnail *Upload) (*domain.Video, error)
	Get(ctx context.Context, viewer, videoID primitive.ObjectID) (*domain.Video, error)
	List(ctx context.Context, opts repository.ListVideosOptions) (*domain.VideoPage, error)
	Update(ctx context.Context, actor, videoID primitive.ObjectID, req *dto.UpdateVideoRequest) (*domain.Video, error)
	Delete(ctx context.Context, actor, videoID primitive.ObjectID) error
}

// CommentService defines comment operations
type CommentService interface {
	Create(ctx context.Context, owner, videoID primitive.ObjectID, content string) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID primitive.ObjectID) ([]*domain.CommentWithOwner, error)
	Update(ctx context.Context, actor, commentID primitive.ObjectID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, actor, commentID primitive.ObjectID) error
}

// LikeService defines like toggles and queries
type LikeService interface {
	ToggleVideo(ctx context.Context, userID, videoID primitive.ObjectID) (liked bool, err error)
	ToggleComment(ctx context.Context, userID, commentID primitive.ObjectID) (liked bool, err error)
	ToggleTweet(ctx context.Context, userID, tweetID primitive.ObjectID) (liked bool, err error)
	LikedVideos(ctx context.Context, userID primitive.ObjectID) ([]*domain.LikedVideo, error)
}

// PlaylistService defines playlist operations
type PlaylistService interface {
	Create(ctx context.Context, owner primitive.ObjectID, req *dto.CreatePlaylistRequest) (*domain.Playlist, error)
	Get(ctx context.Context, playlistID primitive.ObjectID) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Playlist, error)
	AddVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*domain.Playlist, error)
	RemoveVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*domain.Playlist, error)
	Update(ctx context.Context, actor, playlistID primitive.ObjectID, req *dto.UpdatePlaylistRequest) (*domain.Playlist, error)
	Delete(ctx context.Context, actor, playlistID primitive.ObjectID) error
}

// SubscriptionService defines subscription operations
type SubscriptionService interface {
	Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (subscribed bool, err error)
	Subscribers(ctx context.Context, channel primitive.ObjectID) ([]*domain.SubscriptionWithUser, error)
	SubscribedTo(ctx context.Context, subscriber primitive.ObjectID) ([]*domain.SubscriptionWithUser, error)
}

// TweetService defines tweet operations
type TweetService interface {
	Create(ctx context.Context, owner primitive.ObjectID, content string) (*domain.Tweet, error)
	Get(ctx context.Context, tweetID primitive.ObjectID) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Tweet, error)
	Update(ctx context.Context, actor, tweetID primitive.ObjectID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, actor, tweetID primitive.ObjectID) error
}
