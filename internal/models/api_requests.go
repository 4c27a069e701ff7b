package models

import (
	"time"

	"github.com/google/uuid"
)

// Credentials is the body of sign-in and sign-up requests
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// User is an authenticated account
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is a live sign-in for a user
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthView describes which auth form the client should render
type AuthView struct {
	View      string   `json:"view"` // "sign_in" or "sign_up"
	Providers []string `json:"providers"`
}

// AuthResponse is returned after sign-in, sign-up and sign-out
type AuthResponse struct {
	User       *User  `json:"user,omitempty"`
	RedirectTo string `json:"redirect_to"`
}
