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

// sensitiveFieldsProjection strips the password hash and refresh token from
// any user document that leaves the store for a client.
var sensitiveFieldsProjection = bson.M{"password": 0, "refreshToken": 0}

// userRepository implements UserRepository interface
type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Mongo) UserRepository {
	return &userRepository{
		collection: db.DB.Collection(usersCollection),
	}
}

// Create inserts a new user document
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("username %s or email %s taken: %w", user.Username, user.Email, ErrDuplicateUser)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a full user document, sensitive fields included
func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user := &domain.User{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s not found: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByIDProjected retrieves a user without the password hash and refresh token
func (r *userRepository) GetByIDProjected(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user := &domain.User{}
	opts := options.FindOne().SetProjection(sensitiveFieldsProjection)
	err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s not found: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByEmailOrUsername retrieves a full user document matching either field
func (r *userRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	filter := bson.M{"$or": []bson.M{
		{"email": email},
		{"username": username},
	}}

	user := &domain.User{}
	err := r.collection.FindOne(ctx, filter).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("no user for given email or username: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// SetRefreshToken overwrites the stored refresh token, or clears it for ""
func (r *userRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	var update bson.M
	if token == "" {
		update = bson.M{
			"$unset": bson.M{"refreshToken": ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{"refreshToken": token, "updatedAt": time.Now()},
		}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found: %w", id.Hex(), ErrNotFound)
	}
	return nil
}

// SwapRefreshToken replaces the stored refresh token only if it still equals
// old. The conditional filter makes rotation atomic per document: of two
// concurrent refresh calls presenting the same token, exactly one wins.
func (r *userRepository) SwapRefreshToken(ctx context.Context, id primitive.ObjectID, old, new string) error {
	filter := bson.M{"_id": id, "refreshToken": old}
	update := bson.M{"$set": bson.M{"refreshToken": new, "updatedAt": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to swap refresh token: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrTokenMismatch
	}
	return nil
}

// UpdateAccount updates email and full name, returning the projected user
func (r *userRepository) UpdateAccount(ctx context.Context, id primitive.ObjectID, email, fullName string) (*domain.User, error) {
	update := bson.M{"$set": bson.M{
		"email":     email,
		"fullName":  fullName,
		"updatedAt": time.Now(),
	}}
	return r.findOneAndUpdateProjected(ctx, id, update)
}

// UpdatePassword replaces the stored password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	update := bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found: %w", id.Hex(), ErrNotFound)
	}
	return nil
}

// UpdateProfilePic replaces the profile image reference
func (r *userRepository) UpdateProfilePic(ctx context.Context, id primitive.ObjectID, url, key string) (*domain.User, error) {
	update := bson.M{"$set": bson.M{
		"profilePic":   url,
		"profilePicId": key,
		"updatedAt":    time.Now(),
	}}
	return r.findOneAndUpdateProjected(ctx, id, update)
}

// UpdateCoverPic replaces the cover image reference
func (r *userRepository) UpdateCoverPic(ctx context.Context, id primitive.ObjectID, url, key string) (*domain.User, error) {
	update := bson.M{"$set": bson.M{
		"coverPic":   url,
		"coverPicId": key,
		"updatedAt":  time.Now(),
	}}
	return r.findOneAndUpdateProjected(ctx, id, update)
}

// AddToWatchHistory appends a video reference once
func (r *userRepository) AddToWatchHistory(ctx context.Context, id, videoID primitive.ObjectID) error {
	update := bson.M{"$addToSet": bson.M{"watchHistory": videoID}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update watch history: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found: %w", id.Hex(), ErrNotFound)
	}
	return nil
}

// GetChannelProfile aggregates a channel page: public profile plus
// subscriber counters and whether the viewer subscribes to it.
func (r *userRepository) GetChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*domain.ChannelProfile, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"username": username}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         subscriptionsCollection,
			"localField":   "_id",
			"foreignField": "channel",
			"as":           "subscribers",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         subscriptionsCollection,
			"localField":   "_id",
			"foreignField": "subscriber",
			"as":           "subscribedTo",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"subscribersCount":  bson.M{"$size": "$subscribers"},
			"subscribedToCount": bson.M{"$size": "$subscribedTo"},
			"isSubscribed": bson.M{
				"$in": bson.A{viewer, "$subscribers.subscriber"},
			},
		}}},
		{{Key: "$project", Value: bson.M{
			"username":          1,
			"email":             1,
			"fullName":          1,
			"profilePic":        1,
			"coverPic":          1,
			"subscribersCount":  1,
			"subscribedToCount": 1,
			"isSubscribed":      1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate channel profile: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*domain.ChannelProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode channel profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("channel %s not found: %w", username, ErrNotFound)
	}

	return profiles[0], nil
}

// GetWatchHistory resolves the user's watch-history references into video
// documents joined with each uploader's public profile.
func (r *userRepository) GetWatchHistory(ctx context.Context, id primitive.ObjectID) ([]*domain.VideoWithOwner, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         videosCollection,
			"localField":   "watchHistory",
			"foreignField": "_id",
			"as":           "watchHistory",
			"pipeline": mongo.Pipeline{
				{{Key: "$lookup", Value: bson.M{
					"from":         usersCollection,
					"localField":   "owner",
					"foreignField": "_id",
					"as":           "owner",
					"pipeline": mongo.Pipeline{
						{{Key: "$project", Value: bson.M{
							"username":   1,
							"fullName":   1,
							"profilePic": 1,
						}}},
					},
				}}},
				{{Key: "$addFields", Value: bson.M{
					"owner": bson.M{"$first": "$owner"},
				}}},
			},
		}}},
		{{Key: "$project", Value: bson.M{"watchHistory": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate watch history: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		WatchHistory []*domain.VideoWithOwner `bson:"watchHistory"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode watch history: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("user %s not found: %w", id.Hex(), ErrNotFound)
	}

	return results[0].WatchHistory, nil
}

func (r *userRepository) findOneAndUpdateProjected(ctx context.Context, id primitive.ObjectID, update bson.M) (*domain.User, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(sensitiveFieldsProjection)

	user := &domain.User{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s not found: %w", id.Hex(), ErrNotFound)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("email already in use: %w", ErrDuplicateUser)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
