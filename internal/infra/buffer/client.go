package buffer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const baseURL = "https://api.bufferapp.com/1"

// ErrNotConfigured indicates no access token is set
var ErrNotConfigured = errors.New("buffer access token is not configured")

// Client talks to the Buffer REST API
type Client struct {
	token   string
	httpCli *http.Client
}

// NewClient creates a new Buffer client
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		httpCli: &http.Client{Timeout: 30 * time.Second},
	}
}

// ScheduleUpdate queues a text update on a profile at the given time
func (c *Client) ScheduleUpdate(ctx context.Context, profileID, text string, at time.Time) error {
	if c.token == "" {
		return ErrNotConfigured
	}

	form := url.Values{}
	form.Set("access_token", c.token)
	form.Set("text", text)
	form.Add("profile_ids[]", profileID)
	form.Set("scheduled_at", at.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL+"/updates/create.json", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("schedule update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("schedule update: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("schedule update rejected: %s", result.Message)
	}

	fmt.Printf("[Buffer] Update scheduled on profile %s for %s\n", profileID, at.Format(time.RFC3339))
	return nil
}
