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

// playlistRepository implements PlaylistRepository interface
type playlistRepository struct {
	collection *mongo.Collection
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(db *database.Mongo) PlaylistRepository {
	return &playlistRepository{collection: db.DB.Collection(playlistsCollection)}
}

// Create inserts a new playlist
func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	if playlist.ID.IsZero() {
		playlist.ID = primitive.NewObjectID()
	}
	if playlist.Videos == nil {
		playlist.Videos = []primitive.ObjectID{}
	}

	now := time.Now()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, playlist); err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

// GetByID retrieves a playlist by id
func (r *playlistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	playlist := &domain.Playlist{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(playlist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("playlist %s not found: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return playlist, nil
}

// ListByOwner returns all playlists owned by a user
func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Playlist, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer cursor.Close(ctx)

	var playlists []*domain.Playlist
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, fmt.Errorf("failed to decode playlists: %w", err)
	}
	return playlists, nil
}

// AddVideo appends a video reference once
func (r *playlistRepository) AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (*domain.Playlist, error) {
	update := bson.M{
		"$addToSet": bson.M{"videos": videoID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	return r.findOneAndUpdate(ctx, id, update)
}

// RemoveVideo removes a video reference
func (r *playlistRepository) RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*domain.Playlist, error) {
	update := bson.M{
		"$pull": bson.M{"videos": videoID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return r.findOneAndUpdate(ctx, id, update)
}

// Update replaces name and description
func (r *playlistRepository) Update(ctx context.Context, id primitive.ObjectID, name, description string) (*domain.Playlist, error) {
	update := bson.M{"$set": bson.M{
		"name":        name,
		"description": description,
		"updatedAt":   time.Now(),
	}}
	return r.findOneAndUpdate(ctx, id, update)
}

// Delete removes a playlist
func (r *playlistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("playlist %s not found: %w", id.Hex(), ErrNotFound)
	}
	return nil
}

func (r *playlistRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*domain.Playlist, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	playlist := &domain.Playlist{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(playlist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("playlist %s not found: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return playlist, nil
}
