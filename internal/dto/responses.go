package dto

import "github.com/pranav1597/viewtube-backend/internal/domain"

// AuthResponse is returned by register, login and refresh. The token pair is
// also set as http-only cookies; the body copy exists for non-browser clients.
type AuthResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
