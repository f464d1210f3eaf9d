package service

import (
	"context"
	"fmt"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthResult carries the authenticated user (sensitive fields stripped) and
// the freshly issued token pair.
type AuthResult struct {
	User   *domain.User
	Tokens domain.TokenPair
}

// issueTokenPair loads the user, mints a new access/refresh pair and persists
// the refresh token on the user document, overwriting any prior value. Login
// and registration write the stored refresh token only through here; refresh
// rotation goes through the conditional swap instead.
func (s *authService) issueTokenPair(ctx context.Context, userID primitive.ObjectID) (*AuthResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for token issuance: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.userRepo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &AuthResult{
		User: sanitizeUser(user),
		Tokens: domain.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

// sanitizeUser clears the fields that must never leave the service layer.
func sanitizeUser(user *domain.User) *domain.User {
	clean := *user
	clean.Password = ""
	clean.RefreshToken = ""
	return &clean
}
