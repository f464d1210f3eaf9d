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

// videoRepository implements VideoRepository interface
type videoRepository struct {
	collection *mongo.Collection
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *database.Mongo) VideoRepository {
	return &videoRepository{collection: db.DB.Collection(videosCollection)}
}

// Create inserts a new video document
func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	if video.ID.IsZero() {
		video.ID = primitive.NewObjectID()
	}

	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, video); err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// GetByID retrieves a video by id
func (r *videoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	video := &domain.Video{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("video %s not found: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

// List returns one page of videos plus the total count for the filter
func (r *videoRepository) List(ctx context.Context, listOpts ListVideosOptions) ([]*domain.Video, int64, error) {
	filter := bson.M{}
	if listOpts.Query != "" {
		filter["title"] = bson.M{"$regex": listOpts.Query, "$options": "i"}
	}
	if listOpts.Owner != nil {
		filter["owner"] = *listOpts.Owner
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	sortBy := listOpts.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	direction := 1
	if listOpts.SortDesc {
		direction = -1
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: direction}}).
		SetSkip((listOpts.Page - 1) * listOpts.Limit).
		SetLimit(listOpts.Limit)

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	defer cursor.Close(ctx)

	var videos []*domain.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, 0, fmt.Errorf("failed to decode videos: %w", err)
	}

	return videos, total, nil
}

// Update replaces title and description, returning the updated document
func (r *videoRepository) Update(ctx context.Context, id primitive.ObjectID, title, description string) (*domain.Video, error) {
	update := bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
		"updatedAt":   time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	video := &domain.Video{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("video %s not found: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	return video, nil
}

// IncrementViews bumps the view counter by one
func (r *videoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// Delete removes a video document
func (r *videoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("video %s not found: %w", id.Hex(), ErrNotFound)
	}
	return nil
}
