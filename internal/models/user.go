// Package models defines the data structures exchanged with the Clutter backend.
package models

import "time"

// User is the signed-in principal as returned by /users/me.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayName returns the username, falling back to the email address.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

// MessageResponse is the generic {message} body used by logout and the
// verification endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
