package webdav

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"
)

// ErrNotConfigured indicates no WebDAV endpoint is set
var ErrNotConfigured = errors.New("webdav endpoint is not configured")

// Client uploads files over WebDAV (Nextcloud)
type Client struct {
	baseURL  string
	username string
	password string
	httpCli  *http.Client
}

// NewClient creates a new WebDAV client.
// baseURL should point at the DAV root, e.g.
// https://cloud.example.com/remote.php/dav/files/user
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		httpCli:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload stores content at remotePath, creating parent directories as needed
func (c *Client) Upload(ctx context.Context, remotePath string, content []byte) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}

	remotePath = strings.TrimLeft(remotePath, "/")
	if dir := path.Dir(remotePath); dir != "." {
		if err := c.mkdirAll(ctx, dir); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/"+remotePath, bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", remotePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload %s: unexpected status %d", remotePath, resp.StatusCode)
	}

	fmt.Printf("[WebDAV] Uploaded %s\n", remotePath)
	return nil
}

// mkdirAll creates the remote directory chain with MKCOL.
// 405 means the directory already exists and is fine.
func (c *Client) mkdirAll(ctx context.Context, dir string) error {
	parts := strings.Split(dir, "/")
	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if current == "" {
			current = part
		} else {
			current = current + "/" + part
		}

		req, err := http.NewRequestWithContext(ctx, "MKCOL", c.baseURL+"/"+current, nil)
		if err != nil {
			return fmt.Errorf("build mkcol request: %w", err)
		}
		req.SetBasicAuth(c.username, c.password)

		resp, err := c.httpCli.Do(req)
		if err != nil {
			return fmt.Errorf("mkcol %s: %w", current, err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusMethodNotAllowed {
			return fmt.Errorf("mkcol %s: unexpected status %d", current, resp.StatusCode)
		}
	}
	return nil
}
