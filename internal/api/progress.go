package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/thinkfirst/tutorsync/internal/models"
)

// Progress fetches the dashboard progress report for a child.
func (c *Client) Progress(ctx context.Context, childID int64) (*models.ProgressReport, error) {
	var resp models.ProgressReport
	path := fmt.Sprintf("dashboard/child/%d/progress", childID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Badges fetches a child's earned badges.
func (c *Client) Badges(ctx context.Context, childID int64) ([]models.Badge, error) {
	var resp []models.Badge
	path := fmt.Sprintf("profile/%d/badges", childID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
