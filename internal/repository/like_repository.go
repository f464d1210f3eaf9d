package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// likeRepository implements LikeRepository interface
type likeRepository struct {
	collection *mongo.Collection
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *database.Mongo) LikeRepository {
	return &likeRepository{collection: db.DB.Collection(likesCollection)}
}

// GetByVideo finds a user's like on a video
func (r *likeRepository) GetByVideo(ctx context.Context, videoID, userID primitive.ObjectID) (*domain.Like, error) {
	return r.getOne(ctx, bson.M{"video": videoID, "likedBy": userID})
}

// GetByComment finds a user's like on a comment
func (r *likeRepository) GetByComment(ctx context.Context, commentID, userID primitive.ObjectID) (*domain.Like, error) {
	return r.getOne(ctx, bson.M{"comment": commentID, "likedBy": userID})
}

// GetByTweet finds a user's like on a tweet
func (r *likeRepository) GetByTweet(ctx context.Context, tweetID, userID primitive.ObjectID) (*domain.Like, error) {
	return r.getOne(ctx, bson.M{"tweet": tweetID, "likedBy": userID})
}

// Create inserts a new like
func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	if like.ID.IsZero() {
		like.ID = primitive.NewObjectID()
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, like); err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// Delete removes a like
func (r *likeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("like %s not found: %w", id.Hex(), ErrNotFound)
	}
	return nil
}

// ListLikedVideos returns the user's video likes joined with the videos themselves
func (r *likeRepository) ListLikedVideos(ctx context.Context, userID primitive.ObjectID) ([]*domain.LikedVideo, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"likedBy": userID,
			"video":   bson.M{"$exists": true},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         videosCollection,
			"localField":   "video",
			"foreignField": "_id",
			"as":           "video",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"video": bson.M{"$first": "$video"},
		}}},
		{{Key: "$match", Value: bson.M{"video": bson.M{"$ne": nil}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	defer cursor.Close(ctx)

	var liked []*domain.LikedVideo
	if err := cursor.All(ctx, &liked); err != nil {
		return nil, fmt.Errorf("failed to decode liked videos: %w", err)
	}
	return liked, nil
}

func (r *likeRepository) getOne(ctx context.Context, filter bson.M) (*domain.Like, error) {
	like := &domain.Like{}
	err := r.collection.FindOne(ctx, filter).Decode(like)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("like not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return like, nil
}
