package api

import (
	"context"
	"net/http"

	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
)

const authBasePath = "/auth"

// Auth wraps the authentication and current-user endpoints.
type Auth struct {
	client *Client
}

// NewAuth creates an Auth collaborator on top of c.
func NewAuth(c *Client) *Auth {
	return &Auth{client: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Code string `json:"code"`
}

// Login starts a session. The backend sets the session cookie.
func (a *Auth) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return Fetch[models.AuthResponse](ctx, a.client, authBasePath+"/login", RequestOptions{
		Method: http.MethodPost,
		Body:   loginRequest{Email: email, Password: password},
	})
}

// Register creates an account and starts a session.
func (a *Auth) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	return Fetch[models.AuthResponse](ctx, a.client, authBasePath+"/register", RequestOptions{
		Method: http.MethodPost,
		Body:   registerRequest{Username: username, Email: email, Password: password},
	})
}

// Logout invalidates the server-side session.
func (a *Auth) Logout(ctx context.Context) (*models.AuthResponse, error) {
	return Fetch[models.AuthResponse](ctx, a.client, authBasePath+"/logout", RequestOptions{
		Method: http.MethodPost,
	})
}

// CurrentUser returns the user owning the session cookie. It is the only
// authority on whether a session is valid.
func (a *Auth) CurrentUser(ctx context.Context) (*models.User, error) {
	return Fetch[models.User](ctx, a.client, "/users/me", RequestOptions{})
}

// Verify exchanges an email verification code.
func (a *Auth) Verify(ctx context.Context, code string) (*models.MessageResponse, error) {
	return Fetch[models.MessageResponse](ctx, a.client, authBasePath+"/verify", RequestOptions{
		Method: http.MethodPost,
		Body:   verifyRequest{Code: code},
	})
}

// GenerateCode asks the backend to email a fresh verification code.
func (a *Auth) GenerateCode(ctx context.Context) (*models.MessageResponse, error) {
	return Fetch[models.MessageResponse](ctx, a.client, authBasePath+"/generate-code", RequestOptions{
		Method: http.MethodPost,
	})
}
