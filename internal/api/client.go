// Package api is the typed HTTP gateway to the tutoring backend. The
// client carries no retry or caching policy of its own beyond the
// refresh-on-401 protocol delegated to its Authorizer; repositories and
// the sync service own everything else.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single gateway call. The core treats
	// calls as potentially blocking; this is the outer HTTP bound.
	DefaultTimeout = 30 * time.Second

	authPathPrefix = "auth/"
)

// Authorizer supplies bearer tokens and performs the single-flight
// refresh protocol. Token returns "" when logged out. Refresh exchanges
// a stale access token for a fresh one, or fails with the session
// cleared.
type Authorizer interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context, stale string) (string, error)
}

// Client is the remote gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       Authorizer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthorizer attaches the session manager after construction; the
// manager itself needs the client for its auth endpoints.
func (c *Client) SetAuthorizer(auth Authorizer) {
	c.auth = auth
}

// doRequest executes one gateway call. Paths under auth/ bypass token
// attachment and 401 interception entirely, which keeps the refresh
// endpoint from recursing into itself. For all other paths a 401 asks
// the Authorizer to refresh and retries the original request exactly
// once with the returned token.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	authExempt := strings.HasPrefix(path, authPathPrefix)

	token := ""
	if !authExempt && c.auth != nil {
		var err error
		token, err = c.auth.Token(ctx)
		if err != nil {
			return fmt.Errorf("resolve token: %w", err)
		}
	}

	status, data, err := c.execute(ctx, method, path, payload, query, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !authExempt && c.auth != nil {
		fresh, refreshErr := c.auth.Refresh(ctx, token)
		if refreshErr != nil {
			return refreshErr
		}
		status, data, err = c.execute(ctx, method, path, payload, query, fresh)
		if err != nil {
			return err
		}
	}

	if status < 200 || status >= 300 {
		return &RemoteError{Status: status, Message: errorMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// execute performs a single HTTP round trip.
func (c *Client) execute(ctx context.Context, method, path string, payload []byte, query url.Values, token string) (int, []byte, error) {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// errorMessage extracts the backend's error message when the body
// carries one.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
