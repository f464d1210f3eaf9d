package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/service"
	"go.uber.org/zap"
)

// PlaylistHandler handles playlist management
type PlaylistHandler struct {
	playlistService service.PlaylistService
	logger          *zap.Logger
}

// NewPlaylistHandler creates a new playlist handler
func NewPlaylistHandler(playlistService service.PlaylistService, logger *zap.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
		logger:          logger,
	}
}

// Create makes a new empty playlist
func (h *PlaylistHandler) Create(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	var req dto.CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	playlist, err := h.playlistService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, playlist)
}

// Get returns a single playlist
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := pathObjectID(c, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.Get(c.Request.Context(), playlistID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// ListByUser returns a user's playlists
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := pathObjectID(c, "userId")
	if !ok {
		return
	}

	playlists, err := h.playlistService.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, playlists)
}

// AddVideo adds a video to a playlist; only the owner may do so
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	playlistID, ok := pathObjectID(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.AddVideo(c.Request.Context(), user.ID, playlistID, videoID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// RemoveVideo removes a video from a playlist; only the owner may do so
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	playlistID, ok := pathObjectID(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.RemoveVideo(c.Request.Context(), user.ID, playlistID, videoID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// Update changes playlist name and description; only the owner may do so
func (h *PlaylistHandler) Update(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	playlistID, ok := pathObjectID(c, "playlistId")
	if !ok {
		return
	}

	var req dto.UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	playlist, err := h.playlistService.Update(c.Request.Context(), user.ID, playlistID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// Delete removes a playlist; only the owner may do so
func (h *PlaylistHandler) Delete(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	playlistID, ok := pathObjectID(c, "playlistId")
	if !ok {
		return
	}

	if err := h.playlistService.Delete(c.Request.Context(), user.ID, playlistID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Playlist deleted successfully"})
}
