package api

import (
	"context"
	"net/http"

	"github.com/thinkfirst/tutorsync/internal/models"
)

// Register creates a parent account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Role == "" {
		req.Role = "PARENT"
	}
	var resp models.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "auth/register", req, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates a parent.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "auth/login", req, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChildLogin authenticates a child profile.
func (c *Client) ChildLogin(ctx context.Context, req models.ChildLoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "auth/child/login", req, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshToken exchanges a refresh token for fresh credentials.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	req := models.RefreshTokenRequest{RefreshToken: refreshToken}
	var resp models.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "auth/refresh-token", req, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
