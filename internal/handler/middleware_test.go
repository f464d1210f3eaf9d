package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeAuthService stubs Authenticate; the embedded interface panics on
// anything else, which no middleware test should reach.
type fakeAuthService struct {
	service.AuthService
	user  *domain.User
	seen  string
	valid string
}

func (f *fakeAuthService) Authenticate(_ context.Context, token string) (*domain.User, error) {
	f.seen = token
	if token != f.valid {
		return nil, fmt.Errorf("invalid token: token has expired: %w", service.ErrUnauthorized)
	}
	return f.user, nil
}

func newGateRouter(auth *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(auth))
	router.POST("/protected", func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}

		// Prove the body survived token extraction
		body, _ := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusOK, gin.H{"username": user.Username, "body": string(body)})
	})
	return router
}

func newFakeAuth() *fakeAuthService {
	return &fakeAuthService{
		user: &domain.User{
			ID:       primitive.NewObjectID(),
			Username: "alice",
			Email:    "alice@example.com",
		},
		valid: "good-token",
	}
}

func TestAuthMiddlewareMissingCredential(t *testing.T) {
	router := newGateRouter(newFakeAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareCookie(t *testing.T) {
	auth := newFakeAuth()
	router := newGateRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "good-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "good-token", auth.seen)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	auth := newFakeAuth()
	router := newGateRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "good-token", auth.seen)
}

func TestAuthMiddlewareRawHeader(t *testing.T) {
	auth := newFakeAuth()
	router := newGateRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "good-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "good-token", auth.seen)
}

func TestAuthMiddlewareBodyToken(t *testing.T) {
	auth := newFakeAuth()
	router := newGateRouter(auth)

	payload, err := json.Marshal(gin.H{"accessToken": "good-token", "content": "hello"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "good-token", auth.seen)
	// The handler still sees the full body after the middleware peeked at it
	assert.Contains(t, w.Body.String(), "hello")
}

func TestAuthMiddlewareCookieTakesPriority(t *testing.T) {
	auth := newFakeAuth()
	router := newGateRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "good-token"})
	req.Header.Set("Authorization", "Bearer other-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "good-token", auth.seen)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := newGateRouter(newFakeAuth())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The rejection reason is surfaced to the client, not swallowed.
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "token has expired")
}

func TestCurrentUserAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CurrentUser(c)
	assert.False(t, ok)
}
