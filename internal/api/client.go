package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource yields the bearer credential for authenticated calls.
// Returning "" sends the request unauthenticated.
type TokenSource func() string

type Client struct {
	httpClient *http.Client
	base       string
	token      TokenSource

	// onUnauthorized fires once per call that maps to a 401, letting the
	// session layer demote itself and clear the stored credential.
	onUnauthorized func()
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.token = ts
	}
}

func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		base:       strings.TrimSuffix(baseURL, "/"),
		token:      func() string { return "" },
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// apipath joins path segments under the API root, preserving the
// trailing slash the API expects on collection resources.
func (c *Client) apipath(path ...string) string {
	parts := make([]string, 0, len(path)+1)
	parts = append(parts, c.base)
	for _, p := range path {
		parts = append(parts, strings.Trim(p, "/"))
	}

	return strings.Join(parts, "/") + "/"
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("api.newRequest -> %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, url string, payload interface{}) (*http.Request, error) {
	buf := &bytes.Buffer{}
	if payload != nil {
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, fmt.Errorf("api.newJSONRequest -> %w", err)
		}
	}

	return c.newRequest(ctx, method, url, buf, "application/json")
}
