package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/service"
	"go.uber.org/zap"
)

// SubscriptionHandler handles channel subscriptions
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
	logger              *zap.Logger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService service.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		logger:              logger,
	}
}

// Toggle flips the viewer's subscription to a channel
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	channelID, ok := pathObjectID(c, "channelId")
	if !ok {
		return
	}

	subscribed, err := h.subscriptionService.Toggle(c.Request.Context(), user.ID, channelID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribed": subscribed})
}

// Subscribers lists the users subscribed to the viewer's channel
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	subscribers, err := h.subscriptionService.Subscribers(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, subscribers)
}

// SubscribedTo lists the channels the viewer subscribes to
func (h *SubscriptionHandler) SubscribedTo(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	channels, err := h.subscriptionService.SubscribedTo(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, channels)
}
