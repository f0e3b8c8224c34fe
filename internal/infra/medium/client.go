package medium

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const baseURL = "https://api.medium.com/v1"

// ErrNotConfigured indicates no integration token is set
var ErrNotConfigured = errors.New("medium integration token is not configured")

// Client talks to the Medium REST API
type Client struct {
	token   string
	httpCli *http.Client
}

// NewClient creates a new Medium client
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		httpCli: &http.Client{Timeout: 30 * time.Second},
	}
}

// Post is a created Medium post
type Post struct {
	ID  string
	URL string
}

// CreatePost publishes a markdown post under the token's user.
// publishStatus is one of draft, public, unlisted.
func (c *Client) CreatePost(ctx context.Context, title, content string, tags []string, publishStatus string) (*Post, error) {
	if c.token == "" {
		return nil, ErrNotConfigured
	}

	userID, err := c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]interface{}{
		"title":         title,
		"contentFormat": "markdown",
		"content":       content,
		"tags":          tags,
		"publishStatus": publishStatus,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/users/%s/posts", baseURL, userID), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("create post: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	fmt.Printf("[Medium] Post published: %s\n", result.Data.URL)
	return &Post{ID: result.Data.ID, URL: result.Data.URL}, nil
}

// currentUserID resolves the user id behind the integration token
func (c *Client) currentUserID(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/me", nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get user: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode user: %w", err)
	}
	if result.Data.ID == "" {
		return "", fmt.Errorf("get user: empty user id")
	}
	return result.Data.ID, nil
}
