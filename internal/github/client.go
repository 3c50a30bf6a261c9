package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// TransportError is a non-200 response from the GitHub API. Unlike the
// tracker-side lookup this path is fail-loud: callers get the error back
// instead of a degraded string.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("github API error (status %d): %s", e.Status, e.Body)
}

// MalformedEventError is a successful response whose payload is missing a
// field the matched event kind requires.
type MalformedEventError struct {
	Type  string
	Field string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed %s payload: missing %s", e.Type, e.Field)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the public events feed. The feed is
// unauthenticated, so outbound calls are rate limited well below the
// anonymous API quota.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(1), 5),
	}
}

type Repo struct {
	Name string `json:"name"`
}

// Event is one entry of the public event feed. The kind-specific payload
// stays raw until rendering, where it is decoded per event type.
type Event struct {
	Type      string          `json:"type"`
	Repo      Repo            `json:"repo"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Events fetches the public event feed for a username.
func (c *Client) Events(ctx context.Context, username string) ([]Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/users/%s/events/public", c.baseURL, username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &TransportError{Status: resp.StatusCode, Body: string(body)}
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return events, nil
}

// RenderedEvents fetches the feed and renders the events that fall on the
// given UTC calendar day. An empty day renders as an empty string.
func (c *Client) RenderedEvents(ctx context.Context, username string, day time.Time) (string, error) {
	events, err := c.Events(ctx, username)
	if err != nil {
		return "", err
	}

	return RenderEvents(events, day)
}
