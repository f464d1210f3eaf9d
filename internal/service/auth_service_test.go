package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"github.com/pranav1597/viewtube-backend/internal/utils"
	"github.com/pranav1597/viewtube-backend/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByIDProjected(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

func (r *fakeUserRepo) GetByEmailOrUsername(_ context.Context, email, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) SetRefreshToken(_ context.Context, id primitive.ObjectID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.RefreshToken = token
	return nil
}

func (r *fakeUserRepo) SwapRefreshToken(_ context.Context, id primitive.ObjectID, old, new string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if user.RefreshToken != old {
		return repository.ErrTokenMismatch
	}
	user.RefreshToken = new
	return nil
}

func (r *fakeUserRepo) UpdateAccount(_ context.Context, id primitive.ObjectID, email, fullName string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.Email = email
	user.FullName = fullName
	clone := *user
	clone.Password = ""
	clone.RefreshToken = ""
	return &clone, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Password = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateProfilePic(_ context.Context, id primitive.ObjectID, url, key string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.ProfilePic = url
	user.ProfilePicID = key
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) UpdateCoverPic(_ context.Context, id primitive.ObjectID, url, key string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.CoverPic = url
	user.CoverPicID = key
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) AddToWatchHistory(_ context.Context, id, videoID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.WatchHistory = append(user.WatchHistory, videoID)
	return nil
}

func (r *fakeUserRepo) GetChannelProfile(_ context.Context, username string, _ primitive.ObjectID) (*domain.ChannelProfile, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetWatchHistory(_ context.Context, _ primitive.ObjectID) ([]*domain.VideoWithOwner, error) {
	return nil, nil
}

// fakeStorage is an in-memory MediaStorage recording uploads and deletes
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]int64
	uploads int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]int64{}}
}

func (f *fakeStorage) Upload(_ context.Context, reader io.Reader, size int64, filename, _ string) (*storage.Object, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	key := fmt.Sprintf("obj-%d-%s", f.uploads, filename)
	f.objects[key] = size
	return &storage.Object{
		Key:  key,
		URL:  "http://storage.local/media/" + key,
		Size: size,
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func newTestAuthService(t *testing.T) (AuthService, *fakeUserRepo, *fakeStorage) {
	t.Helper()
	repo := newFakeUserRepo()
	store := newFakeStorage()
	tokens := utils.NewTokenManager("test-secret-key-that-is-at-least-32-characters-long", 15*time.Minute, 7*24*time.Hour)
	svc := NewAuthService(repo, tokens, store, zap.NewNop(), 4)
	return svc, repo, store
}

func imageUpload(name string) *Upload {
	return &Upload{
		Reader:      bytes.NewReader([]byte("image-bytes")),
		Size:        11,
		Filename:    name,
		ContentType: "image/png",
	}
}

func registerAlice(t *testing.T, svc AuthService) *AuthResult {
	t.Helper()
	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
		Password: "secret1",
	}, imageUpload("avatar.png"), nil)
	require.NoError(t, err)
	return result
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	svc, repo, store := newTestAuthService(t)

	result := registerAlice(t, svc)

	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Empty(t, result.User.Password)
	assert.Empty(t, result.User.RefreshToken)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, 1, store.count())

	stored, err := repo.GetByID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Tokens.RefreshToken, stored.RefreshToken)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.True(t, utils.CheckPasswordHash("secret1", stored.Password))
}

func TestRegisterDuplicateUser(t *testing.T) {
	svc, _, store := newTestAuthService(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		FullName: "Other",
		Password: "secret1",
	}, imageUpload("avatar2.png"), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrDuplicateUser)
	// The uniqueness check fails before anything is uploaded
	assert.Equal(t, 1, store.count())
}

func TestRegisterRequiresProfilePic(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
		Password: "secret1",
	}, nil, nil)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerAlice(t, svc)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Empty(t, result.User.Password)
	assert.Empty(t, result.User.RefreshToken)

	// Login by username works too
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "secret1",
	})
	assert.NoError(t, err)
}

func TestLoginFailureIsUniform(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerAlice(t, svc)

	_, wrongPassword := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	_, unknownUser := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret1",
	})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.ErrorIs(t, wrongPassword, ErrUnauthorized)
	assert.ErrorIs(t, unknownUser, ErrUnauthorized)
	// An attacker cannot tell a bad password from a missing account
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestRefreshRotation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	first := registerAlice(t, svc)
	ctx := context.Background()

	second, err := svc.Refresh(ctx, first.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.Tokens.RefreshToken, second.Tokens.RefreshToken)

	// The superseded token is dead
	_, err = svc.Refresh(ctx, first.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The newest one still rotates
	third, err := svc.Refresh(ctx, second.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, second.Tokens.RefreshToken, third.Tokens.RefreshToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	result := registerAlice(t, svc)

	_, err := svc.Refresh(context.Background(), result.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	result := registerAlice(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, result.User.ID))

	_, err := svc.Refresh(ctx, result.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticate(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	result := registerAlice(t, svc)
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)
	assert.Empty(t, user.Password)
	assert.Empty(t, user.RefreshToken)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// A refresh token is not a valid credential for the gate
	_, err = svc.Authenticate(ctx, result.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// A deleted user's still-valid token no longer authenticates
	repo.mu.Lock()
	delete(repo.users, result.User.ID)
	repo.mu.Unlock()
	_, err = svc.Authenticate(ctx, result.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	result := registerAlice(t, svc)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, result.User.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newsecret",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = svc.ChangePassword(ctx, result.User.ID, &dto.ChangePasswordRequest{
		OldPassword: "secret1",
		NewPassword: "newsecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestUpdateProfilePicReplacesObject(t *testing.T) {
	svc, _, store := newTestAuthService(t)
	result := registerAlice(t, svc)
	ctx := context.Background()

	updated, err := svc.UpdateProfilePic(ctx, result.User.ID, imageUpload("new-avatar.png"))
	require.NoError(t, err)
	assert.NotEqual(t, result.User.ProfilePic, updated.ProfilePic)
	// The old object is removed, so the total count stays at one
	assert.Equal(t, 1, store.count())
}
