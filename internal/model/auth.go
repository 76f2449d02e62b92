package model

import (
	"github.com/google/uuid"
)

// TokenClaims are the validated claims extracted from an access token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenResponse is returned from login/register/refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}
