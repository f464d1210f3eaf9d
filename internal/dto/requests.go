package dto

// RegisterRequest is the multipart form body of a registration request;
// the profile and cover images arrive as file parts next to it.
type RegisterRequest struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	FullName string `form:"fullName" binding:"required"`
	Password string `form:"password" binding:"required,min=6"`
}

// LoginRequest authenticates by email or username plus password
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token in the request body; the cookie
// takes priority when both are present.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdateAccountRequest represents an account details update
type UpdateAccountRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
}

// UploadVideoRequest is the multipart form body of a video upload; the video
// file and thumbnail arrive as file parts. Duration is client-reported since
// media probing is out of scope.
type UploadVideoRequest struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description"`
	Duration    float64 `form:"duration"`
}

// UpdateVideoRequest represents a video metadata update
type UpdateVideoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// ListVideosQuery captures the pagination/filter query of a video listing
type ListVideosQuery struct {
	Page     int64  `form:"page,default=1"`
	Limit    int64  `form:"limit,default=10"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   string `form:"userId"`
}

// CreateCommentRequest represents a new comment
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreatePlaylistRequest represents a new playlist
type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdatePlaylistRequest represents a playlist metadata update
type UpdatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateTweetRequest represents a new tweet
type CreateTweetRequest struct {
	Content string `json:"content" binding:"required"`
}
