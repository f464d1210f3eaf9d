package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/service"
	"go.uber.org/zap"
)

// CommentHandler handles video comments
type CommentHandler struct {
	commentService service.CommentService
	logger         *zap.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// Create posts a comment on a video
func (h *CommentHandler) Create(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), user.ID, videoID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListByVideo returns a video's comments with their authors
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByVideo(c.Request.Context(), videoID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Update edits a comment; only the author may do so
func (h *CommentHandler) Update(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	commentID, ok := pathObjectID(c, "commentId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), user.ID, commentID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment; only the author may do so
func (h *CommentHandler) Delete(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	commentID, ok := pathObjectID(c, "commentId")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), user.ID, commentID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Comment deleted successfully"})
}
