package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pranav1597/viewtube-backend/internal/domain"
	"github.com/pranav1597/viewtube-backend/internal/dto"
	"github.com/pranav1597/viewtube-backend/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CookieConfig controls the auth cookies set alongside the JSON token pair
type CookieConfig struct {
	AccessMaxAge  int
	RefreshMaxAge int
	Secure        bool
}

// AuthHandler handles registration, login and the token lifecycle endpoints
type AuthHandler struct {
	authService service.AuthService
	cookies     CookieConfig
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, cookies CookieConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		logger:      logger,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a new user with profile images and log them in
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	profilePic, closeProfile, err := formUpload(c, "profilePic")
	if err != nil {
		respondBadRequest(c, "profile picture is required")
		return
	}
	defer closeProfile()

	coverPic, closeCover, err := optionalFormUpload(c, "coverPic")
	if err != nil {
		respondBadRequest(c, "invalid cover picture")
		return
	}
	defer closeCover()

	result, err := h.authService.Register(c.Request.Context(), &req, profilePic, coverPic)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setAuthCookies(c, result.Tokens)
	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate by email or username plus password
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setAuthCookies(c, result.Tokens)
	c.JSON(http.StatusOK, dto.AuthResponse{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	})
}

// Refresh handles token rotation
// @Summary Refresh tokens
// @Description Exchange the current refresh token for a new pair
// @Tags users
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie("refreshToken")
	if refreshToken == "" {
		var req dto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		respondBadRequest(c, "refresh token not found in cookie or body")
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setAuthCookies(c, result.Tokens)
	c.JSON(http.StatusOK, dto.AuthResponse{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Clear the stored refresh token and auth cookies
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), user.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out successfully"})
}

// GetCurrentUser returns the authenticated user's profile
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword verifies the old password and stores the new one
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), user.ID, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Password changed successfully"})
}

// UpdateAccount updates email and full name
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	updated, err := h.authService.UpdateAccount(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UpdateProfilePic replaces the profile picture
func (h *AuthHandler) UpdateProfilePic(c *gin.Context) {
	h.updatePicture(c, "profilePic", h.authService.UpdateProfilePic)
}

// UpdateCoverPic replaces the cover picture
func (h *AuthHandler) UpdateCoverPic(c *gin.Context) {
	h.updatePicture(c, "coverPic", h.authService.UpdateCoverPic)
}

// GetChannelProfile returns a channel page with subscriber counts relative
// to the viewer
func (h *AuthHandler) GetChannelProfile(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	profile, err := h.authService.GetChannelProfile(c.Request.Context(), c.Param("username"), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetWatchHistory returns the viewer's watch history with resolved videos
func (h *AuthHandler) GetWatchHistory(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	history, err := h.authService.GetWatchHistory(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *AuthHandler) updatePicture(c *gin.Context, field string, update func(ctx context.Context, userID primitive.ObjectID, pic *service.Upload) (*domain.User, error)) {
	user, ok := CurrentUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	pic, closePic, err := formUpload(c, field)
	if err != nil {
		respondBadRequest(c, fmt.Sprintf("%s file is required", field))
		return
	}
	defer closePic()

	updated, err := update(c.Request.Context(), user.ID, pic)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// setAuthCookies stores the token pair as http-only cookies
func (h *AuthHandler) setAuthCookies(c *gin.Context, tokens domain.TokenPair) {
	c.SetCookie("accessToken", tokens.AccessToken, h.cookies.AccessMaxAge, "/", "", h.cookies.Secure, true)
	c.SetCookie("refreshToken", tokens.RefreshToken, h.cookies.RefreshMaxAge, "/", "", h.cookies.Secure, true)
}

// clearAuthCookies removes the auth cookies
func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie("refreshToken", "", -1, "/", "", h.cookies.Secure, true)
}
