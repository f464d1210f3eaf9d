package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/repository"
	"github.com/pranav1597/viewtube-backend/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// VideoHandler handles video upload, listing and management
type VideoHandler struct {
	videoService service.VideoService
	logger       *zap.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService service.VideoService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		logger:       logger,
	}
}

// Upload handles a multipart video upload with its thumbnail
func (h *VideoHandler) Upload(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	var req dto.UploadVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	videoFile, closeVideo, err := formUpload(c, "videoFile")
	if err != nil {
		respondBadRequest(c, "video file is required")
		return
	}
	defer closeVideo()

	thumbnail, closeThumb, err := formUpload(c, "thumbnail")
	if err != nil {
		respondBadRequest(c, "thumbnail is required")
		return
	}
	defer closeThumb()

	video, err := h.videoService.Upload(c.Request.Context(), user.ID, &req, videoFile, thumbnail)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// Get returns a single video and records it in the viewer's watch history
func (h *VideoHandler) Get(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	video, err := h.videoService.Get(c.Request.Context(), user.ID, videoID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// List returns a paginated, filterable video listing
func (h *VideoHandler) List(c *gin.Context) {
	var query dto.ListVideosQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	opts := repository.ListVideosOptions{
		Page:     query.Page,
		Limit:    query.Limit,
		Query:    query.Query,
		SortBy:   query.SortBy,
		SortDesc: query.SortType != "asc",
	}

	if query.UserID != "" {
		owner, err := primitive.ObjectIDFromHex(query.UserID)
		if err != nil {
			respondBadRequest(c, "invalid userId")
			return
		}
		opts.Owner = &owner
	}

	page, err := h.videoService.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Update changes video metadata; only the owner may do so
func (h *VideoHandler) Update(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	var req dto.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	video, err := h.videoService.Update(c.Request.Context(), user.ID, videoID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// Delete removes a video and its stored media; only the owner may do so
func (h *VideoHandler) Delete(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), user.ID, videoID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Video deleted successfully"})
}
