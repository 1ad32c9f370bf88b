package backend

import (
	"context"
	"net/http"

	"github.com/mitwpu/finditnow/internal/model"
)

// LoginCredentials are the fields sent to POST /auth/login.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterCredentials are the fields sent to POST /auth/register.
type RegisterCredentials struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Password   string `json:"password"`
}

// Login authenticates against the backend and returns the user plus the
// bearer token for subsequent requests.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (model.User, string, error) {
	var resp wireUser
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return model.User{}, "", err
	}
	return resp.user(), resp.Token, nil
}

// Register creates an account and returns the user plus the bearer token.
func (c *Client) Register(ctx context.Context, creds RegisterCredentials) (model.User, string, error) {
	var resp wireUser
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", creds, &resp); err != nil {
		return model.User{}, "", err
	}
	return resp.user(), resp.Token, nil
}

// Logout invalidates the token server-side. Callers treat a failure here as
// non-fatal: the local session is cleared regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// CurrentUser fetches the user the token belongs to.
func (c *Client) CurrentUser(ctx context.Context, token string) (model.User, error) {
	var resp wireUser
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", token, nil, &resp); err != nil {
		return model.User{}, err
	}
	return resp.user(), nil
}
