package api

import (
	"context"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
)

// Login exchanges credentials for a bearer token. The token is opaque to
// this client; only the backend interprets it.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Profile fetches the authenticated user, including role, class, balance,
// due amount and permission grants. A 401 here means the token is no longer
// valid (see IsUnauthorized).
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
