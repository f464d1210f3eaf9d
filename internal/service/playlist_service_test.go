package service

import (
	"context"
	"sync"
	"testing"

	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakePlaylistRepo is an in-memory PlaylistRepository with the same add/remove
// set semantics as the $addToSet/$pull updates it stands in for.
type fakePlaylistRepo struct {
	mu        sync.Mutex
	playlists map[primitive.ObjectID]*domain.Playlist
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{playlists: map[primitive.ObjectID]*domain.Playlist{}}
}

func (r *fakePlaylistRepo) Create(_ context.Context, playlist *domain.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	playlist.ID = primitive.NewObjectID()
	clone := *playlist
	r.playlists[playlist.ID] = &clone
	return nil
}

func (r *fakePlaylistRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	playlist, ok := r.playlists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *playlist
	return &clone, nil
}

func (r *fakePlaylistRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]*domain.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Playlist
	for _, playlist := range r.playlists {
		if playlist.Owner == ownerID {
			clone := *playlist
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakePlaylistRepo) AddVideo(_ context.Context, id, videoID primitive.ObjectID) (*domain.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	playlist, ok := r.playlists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := false
	for _, existing := range playlist.Videos {
		if existing == videoID {
			found = true
			break
		}
	}
	if !found {
		playlist.Videos = append(playlist.Videos, videoID)
	}
	clone := *playlist
	return &clone, nil
}

func (r *fakePlaylistRepo) RemoveVideo(_ context.Context, id, videoID primitive.ObjectID) (*domain.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	playlist, ok := r.playlists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := playlist.Videos[:0]
	for _, existing := range playlist.Videos {
		if existing != videoID {
			kept = append(kept, existing)
		}
	}
	playlist.Videos = kept
	clone := *playlist
	return &clone, nil
}

func (r *fakePlaylistRepo) Update(_ context.Context, id primitive.ObjectID, name, description string) (*domain.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	playlist, ok := r.playlists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	playlist.Name = name
	playlist.Description = description
	clone := *playlist
	return &clone, nil
}

func (r *fakePlaylistRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.playlists[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.playlists, id)
	return nil
}

func newTestPlaylistService(t *testing.T) (PlaylistService, *fakeVideoRepo) {
	t.Helper()
	videos := newFakeVideoRepo()
	return NewPlaylistService(newFakePlaylistRepo(), videos), videos
}

func addVideo(t *testing.T, videos *fakeVideoRepo, title string) primitive.ObjectID {
	t.Helper()
	video := &domain.Video{Owner: primitive.NewObjectID(), Title: title}
	require.NoError(t, videos.Create(context.Background(), video))
	return video.ID
}

func TestPlaylistAddVideoDedupes(t *testing.T) {
	svc, videos := newTestPlaylistService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	videoID := addVideo(t, videos, "clip")

	playlist, err := svc.Create(ctx, owner, &dto.CreatePlaylistRequest{Name: "favorites"})
	require.NoError(t, err)

	updated, err := svc.AddVideo(ctx, owner, playlist.ID, videoID)
	require.NoError(t, err)
	assert.Len(t, updated.Videos, 1)

	updated, err = svc.AddVideo(ctx, owner, playlist.ID, videoID)
	require.NoError(t, err)
	assert.Len(t, updated.Videos, 1)

	updated, err = svc.RemoveVideo(ctx, owner, playlist.ID, videoID)
	require.NoError(t, err)
	assert.Empty(t, updated.Videos)
}

func TestPlaylistAddVideoRequiresExistingVideo(t *testing.T) {
	svc, _ := newTestPlaylistService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	playlist, err := svc.Create(ctx, owner, &dto.CreatePlaylistRequest{Name: "favorites"})
	require.NoError(t, err)

	_, err = svc.AddVideo(ctx, owner, playlist.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlaylistMutationsOwnerOnly(t *testing.T) {
	svc, videos := newTestPlaylistService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	videoID := addVideo(t, videos, "clip")

	playlist, err := svc.Create(ctx, owner, &dto.CreatePlaylistRequest{Name: "favorites"})
	require.NoError(t, err)

	_, err = svc.AddVideo(ctx, stranger, playlist.ID, videoID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, stranger, playlist.ID, &dto.UpdatePlaylistRequest{Name: "hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, stranger, playlist.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(ctx, owner, playlist.ID))
}
