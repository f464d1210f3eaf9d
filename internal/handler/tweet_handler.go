package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TweetHandler handles short text posts
type TweetHandler struct {
	tweetService service.TweetService
	logger       *zap.Logger
}

// NewTweetHandler creates a new tweet handler
func NewTweetHandler(tweetService service.TweetService, logger *zap.Logger) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
		logger:       logger,
	}
}

// Create posts a new tweet
func (h *TweetHandler) Create(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	var req dto.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	tweet, err := h.tweetService.Create(c.Request.Context(), user.ID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, tweet)
}

// Get returns a single tweet
func (h *TweetHandler) Get(c *gin.Context) {
	tweetID, ok := pathObjectID(c, "tweetId")
	if !ok {
		return
	}

	tweet, err := h.tweetService.Get(c.Request.Context(), tweetID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tweet)
}

// List returns tweets by the given user, or the viewer's own when no
// userId query parameter is present.
func (h *TweetHandler) List(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	ownerID := user.ID
	if raw := c.Query("userId"); raw != "" {
		parsed, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respondBadRequest(c, "invalid userId")
			return
		}
		ownerID = parsed
	}

	tweets, err := h.tweetService.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tweets)
}

// Update edits a tweet; only the author may do so
func (h *TweetHandler) Update(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	tweetID, ok := pathObjectID(c, "tweetId")
	if !ok {
		return
	}

	var req dto.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	tweet, err := h.tweetService.Update(c.Request.Context(), user.ID, tweetID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tweet)
}

// Delete removes a tweet; only the author may do so
func (h *TweetHandler) Delete(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	tweetID, ok := pathObjectID(c, "tweetId")
	if !ok {
		return
	}

	if err := h.tweetService.Delete(c.Request.Context(), user.ID, tweetID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Tweet deleted successfully"})
}
