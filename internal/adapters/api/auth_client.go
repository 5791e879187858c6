package api

import (
	"context"
	"net/http"

	"ftms-portal/internal/core/domain"
)

// AuthClient wraps the authentication endpoints
type AuthClient struct {
	gw *Gateway
}

// NewAuthClient creates an auth client over gw
func NewAuthClient(gw *Gateway) *AuthClient {
	return &AuthClient{gw: gw}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token
func (c *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.gw.Do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// CurrentUser fetches the identity behind the stored token
func (c *AuthClient) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.gw.Do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
