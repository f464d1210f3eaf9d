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

// subscriptionRepository implements SubscriptionRepository interface
type subscriptionRepository struct {
	collection *mongo.Collection
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *database.Mongo) SubscriptionRepository {
	return &subscriptionRepository{collection: db.DB.Collection(subscriptionsCollection)}
}

// Get finds a subscription by subscriber and channel
func (r *subscriptionRepository) Get(ctx context.Context, subscriber, channel primitive.ObjectID) (*domain.Subscription, error) {
	sub := &domain.Subscription{}
	err := r.collection.FindOne(ctx, bson.M{"subscriber": subscriber, "channel": channel}).Decode(sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("subscription not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

// Create inserts a new subscription
func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// Delete removes a subscription
func (r *subscriptionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("subscription %s not found: %w", id.Hex(), ErrNotFound)
	}
	return nil
}

// ListSubscribers returns a channel's subscriptions joined with subscriber profiles
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channel primitive.ObjectID) ([]*domain.SubscriptionWithUser, error) {
	return r.listJoined(ctx, bson.M{"channel": channel}, "subscriber")
}

// ListSubscribedTo returns a user's subscriptions joined with channel profiles
func (r *subscriptionRepository) ListSubscribedTo(ctx context.Context, subscriber primitive.ObjectID) ([]*domain.SubscriptionWithUser, error) {
	return r.listJoined(ctx, bson.M{"subscriber": subscriber}, "channel")
}

func (r *subscriptionRepository) listJoined(ctx context.Context, match bson.M, localField string) ([]*domain.SubscriptionWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   localField,
			"foreignField": "_id",
			"as":           "user",
			"pipeline": mongo.Pipeline{
				{{Key: "$project", Value: bson.M{
					"username":   1,
					"fullName":   1,
					"profilePic": 1,
				}}},
			},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"user": bson.M{"$first": "$user"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var subs []*domain.SubscriptionWithUser
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode subscriptions: %w", err)
	}
	return subs, nil
}
