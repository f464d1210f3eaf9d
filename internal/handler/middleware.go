package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/service"
)

// currentUserKey is the context key the auth middleware stores the resolved
// user under.
const currentUserKey = "currentUser"

// maxTokenBodyBytes bounds how much of a request body the middleware will
// read while looking for a token.
const maxTokenBodyBytes = 1 << 20

// AuthMiddleware extracts the access token, verifies it and resolves the
// user it names. Requests without a valid credential never reach the handler.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractAccessToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "no credential supplied",
			})
			c.Abort()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthMiddleware
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}

// extractAccessToken looks for the access token in priority order: the
// accessToken cookie, a Bearer authorization header, an accessToken field in
// a JSON body, and finally the raw authorization header value.
func extractAccessToken(c *gin.Context) string {
	if token, err := c.Cookie("accessToken"); err == nil && token != "" {
		return token
	}

	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}

	if token := tokenFromBody(c); token != "" {
		return token
	}

	return strings.TrimSpace(header)
}

// tokenFromBody peeks at a JSON body for an accessToken field, restoring the
// body so later binding still sees it.
func tokenFromBody(c *gin.Context) string {
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxTokenBodyBytes))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.AccessToken
}
