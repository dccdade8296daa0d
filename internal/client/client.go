package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/handlers"
)

// ErrNotFound reports a code the server does not know.
var ErrNotFound = errors.New("link not found")

// Client talks to the shortener API on behalf of the admin CLI.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the shortener service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateParams are the fields of a link creation request.
type CreateParams struct {
	TargetURL   string
	CustomAlias string
	ExpiresAt   *time.Time
}

// CreateLink creates a short link and returns its API representation.
func (c *Client) CreateLink(ctx context.Context, params CreateParams) (*handlers.LinkBody, error) {
	var req handlers.CreateLinkRequest
	req.Body.TargetURL = params.TargetURL
	req.Body.CustomAlias = params.CustomAlias
	req.Body.ExpiresAt = params.ExpiresAt

	payload, err := json.Marshal(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/links", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("creating link: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusCreated {
		return nil, c.apiError(resp)
	}

	var link handlers.LinkBody
	if err = json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &link, nil
}

// GetLink fetches one link by code.
func (c *Client) GetLink(ctx context.Context, code string) (*handlers.LinkBody, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/links/"+code, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching link %q: %w", code, err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var link handlers.LinkBody
	if err = json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &link, nil
}

// DeleteLink deactivates a link. Later redirects for it answer 410 Gone.
func (c *Client) DeleteLink(ctx context.Context, code string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/links/"+code, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deleting link %q: %w", code, err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusNoContent {
		return c.apiError(resp)
	}

	return nil
}

// Stats fetches aggregated click statistics for a link.
func (c *Client) Stats(ctx context.Context, code string) (*analytics.LinkStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/links/"+code+"/stats", nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching stats for %q: %w", code, err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var stats analytics.LinkStats
	if err = json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &stats, nil
}

// apiError converts a non-2xx response into an error, preferring the
// detail message the server answered with.
func (c *Client) apiError(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Detail)
	}

	return fmt.Errorf("server returned status %d", resp.StatusCode)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
