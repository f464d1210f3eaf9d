package repository

import (
	"context"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// GetByIDProjected loads a user with the password hash and refresh token
	// excluded from the returned projection.
	GetByIDProjected(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
	// SetRefreshToken unconditionally overwrites (or clears, for "") the
	// stored refresh token.
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	// SwapRefreshToken overwrites the stored refresh token only if it still
	// equals old; returns ErrTokenMismatch otherwise.
	SwapRefreshToken(ctx context.Context, id primitive.ObjectID, old, new string) error
	UpdateAccount(ctx context.Context, id primitive.ObjectID, email, fullName string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	UpdateProfilePic(ctx context.Context, id primitive.ObjectID, url, key string) (*domain.User, error)
	UpdateCoverPic(ctx context.Context, id primitive.ObjectID, url, key string) (*domain.User, error)
	AddToWatchHistory(ctx context.Context, id, videoID primitive.ObjectID) error
	GetChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*domain.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, id primitive.ObjectID) ([]*domain.VideoWithOwner, error)
}

// VideoRepository defines methods for video operations
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	List(ctx context.Context, opts ListVideosOptions) ([]*domain.Video, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, title, description string) (*domain.Video, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ListVideosOptions narrows and orders a paginated video listing.
type ListVideosOptions struct {
	Page     int64
	Limit    int64
	Query    string              // case-insensitive title match
	Owner    *primitive.ObjectID // restrict to one uploader
	SortBy   string
	SortDesc bool
}

// CommentRepository defines methods for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID primitive.ObjectID) ([]*domain.CommentWithOwner, error)
	Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// LikeRepository defines methods for like operations
type LikeRepository interface {
	GetByVideo(ctx context.Context, videoID, userID primitive.ObjectID) (*domain.Like, error)
	GetByComment(ctx context.Context, commentID, userID primitive.ObjectID) (*domain.Like, error)
	GetByTweet(ctx context.Context, tweetID, userID primitive.ObjectID) (*domain.Like, error)
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListLikedVideos(ctx context.Context, userID primitive.ObjectID) ([]*domain.LikedVideo, error)
}

// PlaylistRepository defines methods for playlist operations
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Playlist, error)
	AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (*domain.Playlist, error)
	RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*domain.Playlist, error)
	Update(ctx context.Context, id primitive.ObjectID, name, description string) (*domain.Playlist, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SubscriptionRepository defines methods for subscription operations
type SubscriptionRepository interface {
	Get(ctx context.Context, subscriber, channel primitive.ObjectID) (*domain.Subscription, error)
	Create(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListSubscribers(ctx context.Context, channel primitive.ObjectID) ([]*domain.SubscriptionWithUser, error)
	ListSubscribedTo(ctx context.Context, subscriber primitive.ObjectID) ([]*domain.SubscriptionWithUser, error)
}

// TweetRepository defines methods for tweet operations
type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tweet, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Tweet, error)
	Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
