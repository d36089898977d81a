package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/thinkfirst/tutorsync/internal/models"
)

// SendQuery submits a tutoring question for a child.
func (c *Client) SendQuery(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	var resp models.ChatResponse
	if err := c.doRequest(ctx, http.MethodPost, "chat/query", req, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateSession opens a new chat session for a child.
func (c *Client) CreateSession(ctx context.Context, childID int64, title string) (*models.ChatSession, error) {
	query := url.Values{}
	query.Set("childId", strconv.FormatInt(childID, 10))
	if title != "" {
		query.Set("title", title)
	}
	var resp models.ChatSession
	if err := c.doRequest(ctx, http.MethodPost, "chat/session", nil, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChatHistory fetches a session's server-side message history, in order.
func (c *Client) ChatHistory(ctx context.Context, sessionID int64) ([]models.HistoryMessage, error) {
	var resp []models.HistoryMessage
	path := fmt.Sprintf("chat/session/%d/history", sessionID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ChildSessions lists a child's chat sessions.
func (c *Client) ChildSessions(ctx context.Context, childID int64) ([]models.ChatSession, error) {
	var resp []models.ChatSession
	path := fmt.Sprintf("chat/child/%d/sessions", childID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
