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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tweetRepository implements TweetRepository interface
type tweetRepository struct {
	collection *mongo.Collection
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(db *database.Mongo) TweetRepository {
	return &tweetRepository{collection: db.DB.Collection(tweetsCollection)}
}

// Create inserts a new tweet
func (r *tweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	if tweet.ID.IsZero() {
		tweet.ID = primitive.NewObjectID()
	}

	now := time.Now()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, tweet); err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

// GetByID retrieves a tweet by id
func (r *tweetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tweet, error) {
	tweet := &domain.Tweet{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(tweet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("tweet %s not found: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	return tweet, nil
}

// ListByOwner returns all tweets by a user, newest first
func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Tweet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer cursor.Close(ctx)

	var tweets []*domain.Tweet
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, fmt.Errorf("failed to decode tweets: %w", err)
	}
	return tweets, nil
}

// Update replaces a tweet's content, returning the updated document
func (r *tweetRepository) Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Tweet, error) {
	update := bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	tweet := &domain.Tweet{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(tweet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("tweet %s not found: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}
	return tweet, nil
}

// Delete removes a tweet
func (r *tweetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("tweet %s not found: %w", id.Hex(), ErrNotFound)
	}
	return nil
}
