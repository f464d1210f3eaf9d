package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// subscriptionService implements SubscriptionService interface
type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) SubscriptionService {
	return &subscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// Toggle flips the subscriber's subscription to a channel; returns the
// resulting state. Subscribing to oneself is rejected.
func (s *subscriptionService) Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	if subscriber == channel {
		return false, fmt.Errorf("cannot subscribe to your own channel: %w", ErrInvalidInput)
	}

	if _, err := s.userRepo.GetByIDProjected(ctx, channel); err != nil {
		return false, err
	}

	existing, err := s.subRepo.Get(ctx, subscriber, channel)
	if err == nil {
		if err := s.subRepo.Delete(ctx, existing.ID); err != nil {
			return false, fmt.Errorf("failed to unsubscribe: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to look up subscription: %w", err)
	}

	sub := &domain.Subscription{Subscriber: subscriber, Channel: channel}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return false, fmt.Errorf("failed to subscribe: %w", err)
	}
	return true, nil
}

// Subscribers returns the users subscribed to the channel
func (s *subscriptionService) Subscribers(ctx context.Context, channel primitive.ObjectID) ([]*domain.SubscriptionWithUser, error) {
	return s.subRepo.ListSubscribers(ctx, channel)
}

// SubscribedTo returns the channels the user subscribes to
func (s *subscriptionService) SubscribedTo(ctx context.Context, subscriber primitive.ObjectID) ([]*domain.SubscriptionWithUser, error) {
	return s.subRepo.ListSubscribedTo(ctx, subscriber)
}
