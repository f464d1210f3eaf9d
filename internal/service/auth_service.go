package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"github.com/pranav1597/viewtube-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	tokens     *utils.TokenManager
	storage    MediaStorage
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *utils.TokenManager,
	storage MediaStorage,
	logger *zap.Logger,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		storage:    storage,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user with uploaded profile images and logs them in
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest, profilePic, coverPic *Upload) (*AuthResult, error) {
	username := utils.SanitizeUsername(req.Username)
	email := utils.SanitizeEmail(req.Email)

	if !utils.ValidateUsername(username) {
		return nil, fmt.Errorf("invalid username %q: %w", req.Username, ErrInvalidInput)
	}
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("invalid email format: %w", ErrInvalidInput)
	}
	if profilePic == nil {
		return nil, fmt.Errorf("profile picture is required: %w", ErrInvalidInput)
	}

	// Uniqueness is also enforced by the unique indexes; this check exists
	// to fail before uploading any media.
	_, err := s.userRepo.GetByEmailOrUsername(ctx, email, username)
	if err == nil {
		return nil, fmt.Errorf("user with this email or username already exists: %w", repository.ErrDuplicateUser)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profileObj, err := s.storage.Upload(ctx, profilePic.Reader, profilePic.Size, profilePic.Filename, profilePic.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		FullName:     req.FullName,
		Password:     passwordHash,
		ProfilePic:   profileObj.URL,
		ProfilePicID: profileObj.Key,
	}

	if coverPic != nil {
		coverObj, err := s.storage.Upload(ctx, coverPic.Reader, coverPic.Size, coverPic.Filename, coverPic.ContentType)
		if err != nil {
			s.cleanupObjects(ctx, profileObj.Key)
			return nil, fmt.Errorf("failed to upload cover picture: %w", err)
		}
		user.CoverPic = coverObj.URL
		user.CoverPicID = coverObj.Key
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.cleanupObjects(ctx, user.ProfilePicID, user.CoverPicID)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokenPair(ctx, user.ID)
}

// Login authenticates by email or username plus password. The failure is the
// same for an unknown identity and a wrong password.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	email := utils.SanitizeEmail(req.Email)
	username := utils.SanitizeUsername(req.Username)
	if email == "" && username == "" {
		return nil, fmt.Errorf("email or username is required: %w", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmailOrUsername(ctx, email, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	return s.issueTokenPair(ctx, user.ID)
}

// Refresh rotates a valid refresh token into a new pair. The presented token
// must equal the stored one exactly; a superseded or cleared token fails.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userIDHex, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token subject: %w", ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.RefreshToken == "" || subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		return nil, fmt.Errorf("refresh token superseded or revoked: %w", ErrUnauthorized)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken, err := s.tokens.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Conditional swap: only the caller holding the still-current token
	// rotates. A concurrent refresh that lost the race fails here.
	if err := s.userRepo.SwapRefreshToken(ctx, user.ID, refreshToken, newRefreshToken); err != nil {
		if errors.Is(err, repository.ErrTokenMismatch) {
			return nil, fmt.Errorf("refresh token superseded: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return &AuthResult{
		User: sanitizeUser(user),
		Tokens: domain.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
		},
	}, nil
}

// Logout clears the stored refresh token, permanently invalidating any
// outstanding refresh token for the user.
func (s *authService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.userRepo.SetRefreshToken(ctx, userID, ""); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// Authenticate verifies an access token and resolves the identity it names
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrUnauthorized)
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", ErrUnauthorized)
	}

	user, err := s.userRepo.GetByIDProjected(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("unknown user: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	return user, nil
}

// ChangePassword verifies the old password and stores a hash of the new one
func (s *authService) ChangePassword(ctx context.Context, userID primitive.ObjectID, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.Password) {
		return fmt.Errorf("old password is incorrect: %w", ErrUnauthorized)
	}

	passwordHash, err := utils.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateAccount updates email and full name
func (s *authService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, req *dto.UpdateAccountRequest) (*domain.User, error) {
	email := utils.SanitizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("invalid email format: %w", ErrInvalidInput)
	}

	user, err := s.userRepo.UpdateAccount(ctx, userID, email, req.FullName)
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return user, nil
}

// UpdateProfilePic uploads the new image and swaps the stored reference
func (s *authService) UpdateProfilePic(ctx context.Context, userID primitive.ObjectID, pic *Upload) (*domain.User, error) {
	return s.updatePicture(ctx, userID, pic, s.userRepo.UpdateProfilePic, func(u *domain.User) string { return u.ProfilePicID })
}

// UpdateCoverPic uploads the new image and swaps the stored reference
func (s *authService) UpdateCoverPic(ctx context.Context, userID primitive.ObjectID, pic *Upload) (*domain.User, error) {
	return s.updatePicture(ctx, userID, pic, s.userRepo.UpdateCoverPic, func(u *domain.User) string { return u.CoverPicID })
}

// GetChannelProfile returns a channel page relative to the viewer
func (s *authService) GetChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (*domain.ChannelProfile, error) {
	username = utils.SanitizeUsername(username)
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", ErrInvalidInput)
	}

	profile, err := s.userRepo.GetChannelProfile(ctx, username, viewer)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}
	return profile, nil
}

// GetWatchHistory returns the user's watch history with resolved videos
func (s *authService) GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]*domain.VideoWithOwner, error) {
	history, err := s.userRepo.GetWatchHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	return history, nil
}

type pictureUpdate func(ctx context.Context, id primitive.ObjectID, url, key string) (*domain.User, error)

func (s *authService) updatePicture(ctx context.Context, userID primitive.ObjectID, pic *Upload, update pictureUpdate, oldKey func(*domain.User) string) (*domain.User, error) {
	if pic == nil {
		return nil, fmt.Errorf("image file is required: %w", ErrInvalidInput)
	}

	current, err := s.userRepo.GetByIDProjected(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	obj, err := s.storage.Upload(ctx, pic.Reader, pic.Size, pic.Filename, pic.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	user, err := update(ctx, userID, obj.URL, obj.Key)
	if err != nil {
		s.cleanupObjects(ctx, obj.Key)
		return nil, fmt.Errorf("failed to update image reference: %w", err)
	}

	// The replaced object is orphaned; removing it is best-effort.
	s.cleanupObjects(ctx, oldKey(current))

	return user, nil
}

// cleanupObjects deletes stored objects, logging failures instead of
// propagating them.
func (s *authService) cleanupObjects(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete storage object",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}
