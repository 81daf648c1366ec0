package api

import (
	"github.com/google/uuid"

	"github.com/haru235/flashcard-saas/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// SaveSetRequest defines the payload for saving a named flashcard set.
// Size is never taken from the client; it is recomputed from the cards.
type SaveSetRequest struct {
	Name        string             `json:"name"        validate:"required"`
	Description string             `json:"description"`
	Flashcards  []domain.Flashcard `json:"flashcards"  validate:"required"`
}

// SetListResponse wraps the summaries of a user's saved sets.
type SetListResponse struct {
	Sets []domain.SetSummary `json:"sets"`
}

// SetResponse defines the response for fetching a single flashcard set.
type SetResponse struct {
	Name       string             `json:"name"`
	Flashcards []domain.Flashcard `json:"flashcards"`
}
