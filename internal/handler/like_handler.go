package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// LikeHandler handles like toggles on videos, comments and tweets
type LikeHandler struct {
	likeService service.LikeService
	logger      *zap.Logger
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(likeService service.LikeService, logger *zap.Logger) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		logger:      logger,
	}
}

// ToggleVideo flips the viewer's like on a video
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, "videoId", h.likeService.ToggleVideo)
}

// ToggleComment flips the viewer's like on a comment
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, "commentId", h.likeService.ToggleComment)
}

// ToggleTweet flips the viewer's like on a tweet
func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, "tweetId", h.likeService.ToggleTweet)
}

// LikedVideos lists the videos the viewer has liked
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	videos, err := h.likeService.LikedVideos(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

func (h *LikeHandler) toggle(c *gin.Context, param string, flip func(ctx context.Context, userID, targetID primitive.ObjectID) (bool, error)) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	targetID, ok := pathObjectID(c, param)
	if !ok {
		return
	}

	liked, err := flip(c.Request.Context(), user.ID, targetID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
