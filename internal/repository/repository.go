package repository

import (
	"context"
	"errors"

	"github.com/pranav1597/viewtube-backend/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	usersCollection         = "users"
	videosCollection        = "videos"
	commentsCollection      = "comments"
	likesCollection         = "likes"
	playlistsCollection     = "playlists"
	subscriptionsCollection = "subscriptions"
	tweetsCollection        = "tweets"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User         UserRepository
	Video        VideoRepository
	Comment      CommentRepository
	Like         LikeRepository
	Playlist     PlaylistRepository
	Subscription SubscriptionRepository
	Tweet        TweetRepository

	db *mongo.Database
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Mongo) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Video:        NewVideoRepository(db),
		Comment:      NewCommentRepository(db),
		Like:         NewLikeRepository(db),
		Playlist:     NewPlaylistRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Tweet:        NewTweetRepository(db),
		db:           db.DB,
	}
}

// EnsureIndexes creates the indexes the repositories rely on. Username and
// email uniqueness is enforced here rather than in application code.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, userErr := r.db.Collection(usersCollection).Indexes().CreateMany(ctx, userIndexes)

	_, subErr := r.db.Collection(subscriptionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	_, videoErr := r.db.Collection(videosCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
	})

	_, likeErr := r.db.Collection(likesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "likedBy", Value: 1}},
	})

	return errors.Join(userErr, subErr, videoErr, likeErr)
}
